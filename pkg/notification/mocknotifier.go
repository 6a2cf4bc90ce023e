package notification

// MockNotifier records sends for tests. Set Err to simulate a delivery
// failure.
type MockNotifier struct {
	Err               error
	SentNotifications []NotificationData
	SentTypes         []NoticeType
}

func (m *MockNotifier) Send(noticeType NoticeType, data NotificationData, template NoticeTemplate) error {
	if m.Err != nil {
		return m.Err
	}
	m.SentNotifications = append(m.SentNotifications, data)
	m.SentTypes = append(m.SentTypes, noticeType)
	return nil
}

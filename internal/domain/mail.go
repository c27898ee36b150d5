package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateUserMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type DayOffDecisionMailData struct {
	FullName    string `json:"fullName"`
	RequestID   string `json:"requestID"`
	RequestDate string `json:"requestDate"`
	Decision    string `json:"decision"`
	Reason      string `json:"reason"`
	AdminNotes  string `json:"adminNotes"`
}

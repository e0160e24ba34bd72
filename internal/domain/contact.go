package domain

// ContactSubmission is a single contact form post.
type ContactSubmission struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Email       string `json:"email" validate:"required,contact_email"`
	InquiryType string `json:"inquiryType"`
	Message     string `json:"message" validate:"required"`
}

// FullName joins first and last name.
func (s ContactSubmission) FullName() string {
	return s.FirstName + " " + s.LastName
}

// Address is a mail participant.
type Address struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Email is a rendered outbound message ready for a mail transport.
type Email struct {
	From     Address
	To       []Address
	Subject  string
	HTML     string
	Text     string
	Category string
}

// DefaultInquiryType is preselected on the contact form and used when a
// submission leaves the category blank.
const DefaultInquiryType = "General Inquiry"

// InquiryTypes returns the categories offered by the contact form.
// Submissions are not restricted to this list.
func InquiryTypes() []string {
	return []string{DefaultInquiryType, "Project Quote", "Partnership", "Request Demo"}
}

package domain

// DefaultAdminPassword is the password seeded into a fresh document. It is
// stored and compared in plaintext; that matches the deployed data format,
// so changing it here would lock existing documents out.
const DefaultAdminPassword = "admin123"

// Document is the single persisted aggregate. Every store backend reads and
// writes it whole; there is no partial update.
type Document struct {
	Channels       []Channel      `json:"channels"`
	DirectMessages []Conversation `json:"directMessages"`
	Admin          Admin          `json:"admin"`
	Announcements  []Announcement `json:"announcements"`
}

// Admin is the singleton admin record embedded in the document. IsLoggedIn
// is a durable field, not a session: it survives restarts until an explicit
// logout.
type Admin struct {
	Password       string  `json:"password"`
	CustomUsername *string `json:"customUsername"`
	IsLoggedIn     bool    `json:"isLoggedIn"`
}

// DefaultDocument returns a fresh, fully populated document.
func DefaultDocument() Document {
	return Document{
		Channels:       []Channel{},
		DirectMessages: []Conversation{},
		Admin: Admin{
			Password:       DefaultAdminPassword,
			CustomUsername: nil,
			IsLoggedIn:     false,
		},
		Announcements: []Announcement{},
	}
}

// Normalize repairs a structurally incomplete document: nil collections
// become empty ones and a missing admin password is reset to the default.
// The repository applies it on every load and before every save, so callers
// never see a document with absent fields.
func Normalize(d Document) Document {
	if d.Channels == nil {
		d.Channels = []Channel{}
	}
	if d.DirectMessages == nil {
		d.DirectMessages = []Conversation{}
	}
	if d.Announcements == nil {
		d.Announcements = []Announcement{}
	}
	if d.Admin.Password == "" {
		d.Admin.Password = DefaultAdminPassword
	}
	return d
}

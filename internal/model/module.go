package model

type ContentType string

const (
	ContentVideo   ContentType = "VIDEO"
	ContentPDF     ContentType = "PDF"
	ContentWeblink ContentType = "WEBLINK"
)

// Module is an ordered unit of a course. Exactly one of the content pointers
// is populated, matching ContentType; the others are omitted from responses.
// swagger:model Module
type Module struct {
	BaseModel
	CourseID    uint        `gorm:"index;not null" json:"courseId"`
	Title       string      `gorm:"size:255;not null" json:"title"`
	Order       int         `gorm:"default:0;not null" json:"order"`
	ContentType ContentType `gorm:"size:20;not null" json:"contentType"`

	VideoContent *VideoContent `gorm:"foreignKey:ModuleID" json:"videoContent,omitempty"`
	PDFContent   *PDFContent   `gorm:"foreignKey:ModuleID" json:"pdfContent,omitempty"`
	WebLink      *WebLink      `gorm:"foreignKey:ModuleID" json:"webLink,omitempty"`
}

func (Module) TableName() string {
	return "modules"
}

// ContentID returns the id of the live content row, regardless of type.
func (m *Module) ContentID() string {
	switch {
	case m.VideoContent != nil:
		return m.VideoContent.ID
	case m.PDFContent != nil:
		return m.PDFContent.ID
	case m.WebLink != nil:
		return m.WebLink.ID
	}
	return ""
}

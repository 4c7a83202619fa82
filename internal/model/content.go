package model

// swagger:model VideoContent
type VideoContent struct {
	UUIDBase
	ModuleID uint   `gorm:"uniqueIndex;not null" json:"moduleId"`
	URL      string `gorm:"size:500;not null" json:"url"`
	Duration int    `gorm:"default:0" json:"duration"` // seconds
}

func (VideoContent) TableName() string {
	return "video_contents"
}

// swagger:model PDFContent
type PDFContent struct {
	UUIDBase
	ModuleID     uint   `gorm:"uniqueIndex;not null" json:"moduleId"`
	FilePath     string `gorm:"size:500;not null" json:"filePath"`
	OriginalName string `gorm:"size:255" json:"originalName"`
	PageCount    int    `gorm:"default:0" json:"pageCount"`
}

func (PDFContent) TableName() string {
	return "pdf_contents"
}

// swagger:model WebLink
type WebLink struct {
	UUIDBase
	ModuleID uint   `gorm:"uniqueIndex;not null" json:"moduleId"`
	URL      string `gorm:"size:500;not null" json:"url"`
}

func (WebLink) TableName() string {
	return "web_links"
}

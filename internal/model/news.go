package model

// News is a village news article.
type News struct {
	ContentBase
	Summary string `json:"summary" gorm:"type:text" validate:"max=1000"`
	Body    string `json:"body" validate:"required"`
	Author  string `json:"author" gorm:"size:255"`
}

func (*News) EntityType() string { return EntityNews }

package models

type Project struct {
	Base
	Name        string  `gorm:"size:191;not null;index" json:"name"`
	Owner       string  `gorm:"size:255;not null" json:"owner"`
	Description *string `gorm:"size:1024" json:"description"`
}

func (Project) TableName() string { return "projects" }

type Cluster struct {
	Base
	Name        string  `gorm:"size:191;not null;index" json:"name"`
	ProjectID   uint    `gorm:"not null;index" json:"project_id"`
	Description *string `gorm:"size:1024" json:"description"`

	Project *Project `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (Cluster) TableName() string { return "clusters" }

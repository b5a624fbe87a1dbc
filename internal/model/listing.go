package model

// ListingStatus is the lifecycle state shared by jobs, applicants and leads
type ListingStatus string

const (
	StatusOpen   ListingStatus = "open"
	StatusClosed ListingStatus = "closed"
)

// Job is a posting owned by a clinic or doctor account
type Job struct {
	BaseModel
	OwnerID string        `gorm:"type:varchar(64);index" json:"owner_id"`
	Title   string        `gorm:"type:varchar(200);not null" json:"title"`
	Status  ListingStatus `gorm:"type:varchar(20);default:'open'" json:"status"`
}

// Applicant applied to a job
type Applicant struct {
	BaseModel
	JobID  string        `gorm:"type:varchar(64);index" json:"job_id"`
	Name   string        `gorm:"type:varchar(200);not null" json:"name"`
	Status ListingStatus `gorm:"type:varchar(20);default:'open'" json:"status"`
}

// Lead is a sales lead tracked by agents
type Lead struct {
	BaseModel
	OwnerID string        `gorm:"type:varchar(64);index" json:"owner_id"`
	Name    string        `gorm:"type:varchar(200);not null" json:"name"`
	Status  ListingStatus `gorm:"type:varchar(20);default:'open'" json:"status"`
}

// Offering is a sellable package or a time-limited offer
type Offering struct {
	BaseModel
	Title string      `gorm:"type:varchar(200);not null" json:"title"`
	Type  PackageType `gorm:"type:varchar(20);not null;index" json:"type"`
}

package model

// StorageEntry is one persisted key of a device's client-side store
type StorageEntry struct {
	BaseModel
	DeviceID string `gorm:"type:varchar(64);not null;uniqueIndex:idx_storage_device_key" json:"device_id"`
	Key      string `gorm:"type:varchar(100);not null;uniqueIndex:idx_storage_device_key" json:"key"`
	Value    string `gorm:"type:text;not null" json:"value"`
}

// TableName specifies the table name for GORM
func (StorageEntry) TableName() string {
	return "storage_entries"
}

package persistence

// ContractMirrorModel is the database representation of one mirrored
// contract. Conditions are stored as a JSON blob; the mirror is a read-model
// for other consumers, not a queryable normalization.
type ContractMirrorModel struct {
	ID              string `gorm:"primaryKey;column:id"`
	LocalID         string `gorm:"column:local_id;index"`
	Type            string `gorm:"column:type"`
	Partner         string `gorm:"column:partner"`
	ConditionsJSON  string `gorm:"column:conditions_json;type:text"`
	SnapshotVersion string `gorm:"column:snapshot_version"`
	MirroredAt      string `gorm:"column:mirrored_at"`
}

// TableName overrides the default table name
func (ContractMirrorModel) TableName() string {
	return "contract_mirror"
}

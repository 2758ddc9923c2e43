package models

type Marque struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null;size:100"`

	// Relationships
	Modeles []Modele `json:"-" gorm:"foreignKey:MarqueID"`
}

type Modele struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"uniqueIndex;not null;size:100"`
	MarqueID uint   `json:"marque_id" gorm:"not null;index"`
}

type TypeContrat struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null;size:100"`
}

// ContratPrestation is a maintenance plan line: for a contract type and a
// modele, the part and service due at a target kilometrage. IDPiece and
// IDPrestation are existence-checked at write time but intentionally carry
// no database foreign key, matching the production schema.
type ContratPrestation struct {
	ID               uint   `json:"id" gorm:"primaryKey"`
	IDTypeContrat    uint   `json:"id_type_contrat" gorm:"column:id_type_contrat;not null;uniqueIndex:uq_type_modele_km"`
	IDModele         uint   `json:"id_modele" gorm:"column:id_modele;not null;uniqueIndex:uq_type_modele_km;index:idx_modele"`
	KilometrageCible int    `json:"kilometrage_cible" gorm:"not null;uniqueIndex:uq_type_modele_km"`
	Description      string `json:"description" gorm:"size:255"`
	IDPiece          uint   `json:"id_piece" gorm:"column:id_piece;not null"`
	IDPrestation     uint   `json:"id_prestation" gorm:"column:id_prestation;not null"`
}

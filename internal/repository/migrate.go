package repository

import "gorm.io/gorm"

// AutoMigrate creates the schema for every row model. Used by the seed
// binary, local SQLite development, and package tests.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&mineModel{},
		&mineralModel{},
		&attachmentModel{},
		&machineModel{},
		&rentalModel{},
		&purchaseModel{},
		&maintenanceModel{},
		&offerModel{},
		&messageModel{},
		&uploadModel{},
	)
}

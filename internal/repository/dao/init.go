package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Event{},
		&RoleSlot{},
		&RoleAssignment{},
		&Attendance{},
		&Certificate{},
		&Hackathon{},
		&Team{},
		&TeamMember{},
		&Invitation{},
		&Submission{},
		&Evaluation{},
		&Result{},
		&Payment{},
	)
}

package boot

import (
	"log"
	"os"
	"time"

	"etix/src/config"
	"etix/src/db"
	"etix/src/lib"
	"etix/src/models"
	"etix/src/types"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func InitDb() *gorm.DB {
	dbHandle := db.GetDb()

	err := dbHandle.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.ActiveSession{},
		&models.Venue{},
		&models.Category{},
		&models.Event{},
		&models.Ticket{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	seedRoles(dbHandle)

	if err := os.MkdirAll(config.UploadDir(), 0o755); err != nil {
		log.Fatalf("error creating upload directory: %s", err.Error())
	}

	return dbHandle
}

// seedRoles pins the role table to the fixed id/name pairs the rest of the
// code assumes. Conflicts are ignored so re-runs are harmless.
func seedRoles(dbHandle *gorm.DB) {
	roles := []models.Role{
		{ID: types.ROLE_ADMIN_ID, Name: types.ROLE_ADMIN},
		{ID: types.ROLE_USER_ID, Name: types.ROLE_USER},
	}
	if err := dbHandle.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&roles).
		Error; err != nil {
		log.Printf("Error seeding roles: %s\n", err.Error())
	}
}

// InitScheduler starts the background janitor that sweeps expired
// active_sessions. Tokens live for 24 hours; rows older than that are
// dead weight the auth middleware never matches again.
func InitScheduler(dbHandle *gorm.DB) {
	_, err := lib.CreateCronJob(func() {
		cutoff := time.Now().Add(-24 * time.Hour)
		res := dbHandle.
			Unscoped().
			Where("created_at < ?", cutoff).
			Delete(&models.ActiveSession{})
		if res.Error != nil {
			log.Printf("Error purging expired sessions: %s\n", res.Error.Error())
			return
		}
		if res.RowsAffected > 0 {
			log.Printf("Purged %d expired sessions\n", res.RowsAffected)
		}
	}, time.Hour)
	if err != nil {
		log.Printf("Error scheduling session purge job: %s\n", err.Error())
		return
	}
	sched, err := lib.GetScheduler()
	if err != nil {
		return
	}
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	if err := sched.Shutdown(); err != nil {
		log.Println("An error has occurred while stopping Scheduler. Check logs for info")
	}
}

package di

import (
	"go.uber.org/fx"

	"github.com/savora/savora-cloud-go/internal/domain/dao"
	mongodao "github.com/savora/savora-cloud-go/internal/domain/dao/mongo"
)

// DAOModule provides the MongoDB data access objects
var DAOModule = fx.Module("dao",
	fx.Provide(
		provideIDCounter,
		provideUserDAO,
		provideContactDAO,
		provideApplicationDAO,
		provideMenuDAO,
	),
)

func provideIDCounter(db *MongoDatabase) *mongodao.IDCounter {
	return mongodao.NewIDCounter(db.DB)
}

func provideUserDAO(db *MongoDatabase, idCounter *mongodao.IDCounter) dao.UserDAO {
	return mongodao.NewUserDAO(db.DB, idCounter)
}

func provideContactDAO(db *MongoDatabase, idCounter *mongodao.IDCounter) dao.ContactDAO {
	return mongodao.NewContactDAO(db.DB, idCounter)
}

func provideApplicationDAO(db *MongoDatabase, idCounter *mongodao.IDCounter) dao.ApplicationDAO {
	return mongodao.NewApplicationDAO(db.DB, idCounter)
}

func provideMenuDAO(db *MongoDatabase, idCounter *mongodao.IDCounter) dao.MenuDAO {
	return mongodao.NewMenuDAO(db.DB, idCounter)
}

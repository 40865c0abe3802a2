// mongo предоставляет реализацию storage.PagesStorage на базе MongoDB.
// Одна страница — один документ с _id = номер страницы.
package mongo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/pribylovaa/tenders-service/internal/config"
	"github.com/pribylovaa/tenders-service/internal/storage"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	defaultDBName     = "tenders"
	defaultCollection = "tender_pages"
)

// PagesStorage - тонкий адаптер для подключения и коллекции страниц MongoDB.
type PagesStorage struct {
	client *mongodriver.Client
	pages  *mongodriver.Collection
}

// New подключается к MongoDB, проверяет соединение и выбирает коллекцию страниц.
func New(ctx context.Context, cfg config.MongoConfig) (*PagesStorage, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("mongo: empty url")
	}

	cli, err := mongodriver.Connect(ctx, options.Client().ApplyURI(cfg.URL))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	dbName := cfg.Database
	if dbName == "" {
		dbName = databaseFromURI(cfg.URL)
	}

	collection := cfg.Collection
	if collection == "" {
		collection = defaultCollection
	}

	return &PagesStorage{
		client: cli,
		pages:  cli.Database(dbName).Collection(collection),
	}, nil
}

func (s *PagesStorage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// databaseFromURI извлекает имя базы данных из URI-пути mongodb.
// Если оно отсутствует или не поддается расшифровке, возвращает значение по умолчанию.
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}
	return defaultDBName
}

// Проверка выполнения контракта верхнего уровня.
var _ storage.PagesStorage = (*PagesStorage)(nil)

package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"assessment-chat-service/internal/app"
	"assessment-chat-service/internal/domain"
	pgloader "assessment-chat-service/internal/infra/postgres"
	pgmigrations "assessment-chat-service/internal/infra/postgres/migrations"
	infraredis "assessment-chat-service/internal/infra/redis"
	"assessment-chat-service/internal/smalltalk"
)

func TestConversationEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	seedTopics(t, ctx, pgURL, sampleTopics())

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	loader := pgloader.NewCatalogLoader(pool)

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	repo := infraredis.NewCatalogRepository(redisClient, loader, 5*time.Minute)
	service := app.NewChatService(repo, smalltalk.NewMatcher())

	state := domain.Conversation{}.Normalized()
	advance := func(message string, wantStep domain.Step) domain.Turn {
		t.Helper()
		turn, err := service.Advance(ctx, state, message)
		if err != nil {
			t.Fatalf("%q: advance: %v", message, err)
		}
		if turn.State.Step != wantStep {
			t.Fatalf("%q: expected step %s, got %s", message, wantStep, turn.State.Step)
		}
		state = turn.State
		return turn
	}

	advance("start", domain.StepEmail)
	advance("alice@example.com", domain.StepTopic)

	turn := advance("health", domain.StepQuestions)
	if turn.State.Topic != "Health" {
		t.Fatalf("expected canonical topic, got %q", turn.State.Topic)
	}

	advance("b", domain.StepQuestions)
	turn = advance("d", domain.StepResults)
	if turn.State.Score != 8 {
		t.Fatalf("expected score 8, got %d", turn.State.Score)
	}
	if len(turn.Messages) != 1 || turn.Messages[0].Report == nil {
		t.Fatalf("expected results report, got %+v", turn.Messages)
	}
	if turn.Messages[0].Report.Grade != "D" {
		t.Fatalf("expected grade D, got %s", turn.Messages[0].Report.Grade)
	}

	// The catalog should now live in redis; a fresh repo over a closed loader
	// still serves it from cache.
	if _, err := infraredis.NewCatalogRepository(redisClient, loader, 5*time.Minute).Catalog(ctx); err != nil {
		t.Fatalf("catalog from cache: %v", err)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "chat", "POSTGRES_PASSWORD": "chatpass", "POSTGRES_DB": "chatdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://chat:chatpass@%s:%s/chatdb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func seedTopics(t *testing.T, ctx context.Context, dsn string, topics []domain.Topic) {
	t.Helper()
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	for i, topic := range topics {
		data, err := json.Marshal(topic.Questions)
		if err != nil {
			t.Fatalf("marshal topic %s: %v", topic.Name, err)
		}
		if _, err := db.ExecContext(ctx,
			`INSERT INTO topics (name, position, data) VALUES (?, ?, ?::jsonb) ON CONFLICT (name) DO UPDATE SET position=EXCLUDED.position, data=EXCLUDED.data`,
			topic.Name, i, string(data)); err != nil {
			t.Fatalf("insert topic %s: %v", topic.Name, err)
		}
	}
}

func sampleTopics() []domain.Topic {
	return []domain.Topic{
		{
			Name: "Health",
			Questions: []domain.Question{
				{
					ID:   1,
					Text: "How often do you exercise?",
					Options: []domain.Option{
						{Level: domain.LevelA, Text: "Never", Score: 2},
						{Level: domain.LevelB, Text: "1-2 times/week", Score: 5},
						{Level: domain.LevelC, Text: "3-4 times/week", Score: 3},
						{Level: domain.LevelD, Text: "Daily", Score: 7},
					},
				},
				{
					ID:   2,
					Text: "How would you rate your sleep quality?",
					Options: []domain.Option{
						{Level: domain.LevelA, Text: "Poor", Score: 1},
						{Level: domain.LevelB, Text: "Fair", Score: 4},
						{Level: domain.LevelC, Text: "Good", Score: 6},
						{Level: domain.LevelD, Text: "Excellent", Score: 3},
					},
				},
			},
		},
		{
			Name: "Fitness",
			Questions: []domain.Question{
				{
					ID:   1,
					Text: "Can you hold a plank for a minute?",
					Options: []domain.Option{
						{Level: domain.LevelA, Text: "No", Score: 1},
						{Level: domain.LevelB, Text: "Almost", Score: 3},
						{Level: domain.LevelC, Text: "Yes", Score: 5},
						{Level: domain.LevelD, Text: "Two minutes", Score: 7},
					},
				},
			},
		},
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}

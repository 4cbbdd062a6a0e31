package controller

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"sdch/internal/pkg/serverutils"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
}

type healthController struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewHealthController(db *gorm.DB, rdb *redis.Client) IHealthController {
	return &healthController{db: db, rdb: rdb}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)
}

func (c *healthController) Health(ctx *fiber.Ctx) error {
	deps := map[string]string{
		"postgres": c.checkPostgres(),
		"redis":    c.checkRedis(),
	}

	status := "ok"
	for _, v := range deps {
		if v != "ok" {
			status = "degraded"
		}
	}

	return ctx.JSON(serverutils.SuccessResponse("health", fiber.Map{
		"status":       status,
		"dependencies": deps,
	}))
}

func (c *healthController) checkPostgres() string {
	sqlDB, err := c.db.DB()
	if err != nil {
		return "unavailable: " + err.Error()
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return "unavailable: " + err.Error()
	}
	return "ok"
}

func (c *healthController) checkRedis() string {
	if c.rdb == nil {
		return "not configured"
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return "unavailable: " + err.Error()
	}
	return "ok"
}

package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/merchstore/internal/logger"
	"github.com/example/merchstore/internal/middleware"
	"github.com/example/merchstore/internal/models"
)

var errTaskAlreadyCompleted = errors.New("task already completed")

// RewardsHandler manages loyalty tasks and points.
type RewardsHandler struct {
	db  *gorm.DB
	log logger.Logger
}

// NewRewardsHandler constructs RewardsHandler.
func NewRewardsHandler(db *gorm.DB, log logger.Logger) *RewardsHandler {
	return &RewardsHandler{db: db, log: log}
}

// ListTasks returns every reward task, highest reward first.
func (h *RewardsHandler) ListTasks(c *fiber.Ctx) error {
	var tasks []models.RewardTask
	if err := h.db.Order("points desc").Order("created_at asc").Find(&tasks).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": tasks})
}

// MyRewards returns the caller's point balance and completed task ids.
func (h *RewardsHandler) MyRewards(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "profile not found")
		}
		return err
	}

	var completed []uuid.UUID
	if err := h.db.Model(&models.UserTask{}).
		Where("user_id = ?", userID).
		Pluck("task_id", &completed).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"points":          user.Points,
			"completed_tasks": completed,
		},
	})
}

// CompleteTask records a task completion and credits its points. A task is
// credited once per user.
func (h *RewardsHandler) CompleteTask(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var balance int
	err = h.db.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var task models.RewardTask
		if err := tx.First(&task, "id = ?", taskID).Error; err != nil {
			return err
		}

		completion := models.UserTask{UserID: userID, TaskID: task.ID, CompletedAt: time.Now()}
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&completion)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errTaskAlreadyCompleted
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("points", gorm.Expr("points + ?", task.Points)).Error; err != nil {
			return err
		}

		return tx.Model(&models.User{}).Select("points").Where("id = ?", userID).Scan(&balance).Error
	})
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fiber.NewError(fiber.StatusNotFound, "task not found")
	case errors.Is(err, errTaskAlreadyCompleted):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case err != nil:
		return err
	}

	h.log.Info("reward task completed",
		logger.String("user_id", userID.String()),
		logger.String("task_id", taskID.String()),
		logger.Int("points", balance),
	)

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"points": balance}})
}

type createTaskRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Points      int    `json:"points" validate:"required,gt=0"`
	URL         string `json:"url" validate:"omitempty,url"`
}

// CreateTask adds a reward task.
func (h *RewardsHandler) CreateTask(c *fiber.Ctx) error {
	var req createTaskRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	task := models.RewardTask{
		Title:       req.Title,
		Description: req.Description,
		Points:      req.Points,
		URL:         req.URL,
	}
	if err := h.db.Create(&task).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": task})
}

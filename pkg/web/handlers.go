package web

import (
	"github.com/gofiber/fiber/v2"
)

// handleStatus returns the current trainer state.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return c.JSON(s.state)
}

// handleListExercises returns the available exercise ids.
func (s *Server) handleListExercises(c *fiber.Ctx) error {
	if s.ListExercises == nil {
		return c.JSON([]string{})
	}
	return c.JSON(s.ListExercises())
}

// handleSelectExercise switches the active exercise.
func (s *Server) handleSelectExercise(c *fiber.Ctx) error {
	id := c.Params("id")
	if s.OnSelectExercise == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "exercise selection not configured",
		})
	}
	if err := s.OnSelectExercise(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"exercise": id})
}

// handleReset zeroes the rep counters.
func (s *Server) handleReset(c *fiber.Ctx) error {
	if s.OnReset == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "reset not configured",
		})
	}
	s.OnReset()
	return c.JSON(fiber.Map{"reset": true})
}

// handlers/catalog.go - Category / location reference data handlers
package handlers

import (
	"sportmate/models"

	"github.com/gofiber/fiber/v2"
)

// ================== CATEGORIES ==================

// GetCategories lists all categories
// GET /api/categories
func GetCategories(c *fiber.Ctx) error {
	categories, err := catalogService.ListCategories()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"categories": categories,
	})
}

// CreateCategory adds a category
// POST /api/categories
func CreateCategory(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Category name is required"})
	}

	category, err := catalogService.CreateCategory(req.Name)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{
		"success":  true,
		"category": category,
	})
}

// UpdateCategory renames a category
// PUT /api/categories/:id
func UpdateCategory(c *fiber.Ctx) error {
	categoryID, err := idParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid category ID"})
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Category name is required"})
	}

	category, err := catalogService.UpdateCategory(categoryID, req.Name)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"category": category,
	})
}

// ================== LOCATIONS ==================

// GetLocations lists all venues
// GET /api/locations
func GetLocations(c *fiber.Ctx) error {
	locations, err := catalogService.ListLocations()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"locations": locations,
	})
}

// CreateLocation adds a venue
// POST /api/locations
func CreateLocation(c *fiber.Ctx) error {
	var location models.Location
	if err := c.BodyParser(&location); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	location.ID = 0

	created, err := catalogService.CreateLocation(&location)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{
		"success":  true,
		"location": created,
	})
}

// UpdateLocation applies a partial update to a venue
// PATCH /api/locations/:id
func UpdateLocation(c *fiber.Ctx) error {
	locationID, err := idParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid location ID"})
	}

	var patch models.LocationPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	location, err := catalogService.UpdateLocation(locationID, patch)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"location": location,
	})
}

// ================== COMPATIBILITY PAIRS ==================

// GetPairs lists the compatibility table
// GET /api/catalog/pairs
func GetPairs(c *fiber.Ctx) error {
	pairs, err := catalogService.ListPairs()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"pairs":   pairs,
	})
}

// RegisterPair declares a (category, location) pair bookable
// POST /api/catalog/pairs
func RegisterPair(c *fiber.Ctx) error {
	var req struct {
		CategoryID uint `json:"category_id"`
		LocationID uint `json:"location_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.CategoryID == 0 || req.LocationID == 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "category_id and location_id are required"})
	}

	pair, err := catalogService.RegisterPair(req.CategoryID, req.LocationID)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"pair":    pair,
	})
}

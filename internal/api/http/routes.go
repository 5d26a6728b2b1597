package httpapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/dnazarov/avatar-twin-engine/internal/avatar"
	"github.com/dnazarov/avatar-twin-engine/internal/envdata"
	"github.com/dnazarov/avatar-twin-engine/internal/scoring"
	"github.com/dnazarov/avatar-twin-engine/internal/store"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *envdata.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/airquality/current", func(c *fiber.Ctx) error {
		locReq, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		loc := locReq.toLocation()
		snapshot, err := service.GetLatest(c.UserContext(), loc)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no air quality data for requested location")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch air quality data")
		}

		resp := fiber.Map{"snapshot": snapshot}
		if snapshot.Air.AQI != nil {
			resp["classification"] = scoring.Classify(*snapshot.Air.AQI)
		}
		return c.JSON(resp)
	})

	v1.Get("/airquality/history", func(c *fiber.Ctx) error {
		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		loc := req.Location.toLocation()
		snapshots, err := service.GetRange(c.UserContext(), loc, req.From, req.To)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no history for requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch history")
		}

		return c.JSON(fiber.Map{
			"location":  loc,
			"from":      req.From,
			"to":        req.To,
			"snapshots": snapshots,
		})
	})

	v1.Get("/avatar/state", func(c *fiber.Ctx) error {
		locReq, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		profileReq, err := parseProfileQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		loc := locReq.toLocation()
		snapshot, err := service.GetLatest(c.UserContext(), loc)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no environmental data for requested location")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch environmental data")
		}

		return c.JSON(avatar.BuildState(snapshot, profileReq.toProfile()))
	})

	v1.Get("/scores/energy", func(c *fiber.Ctx) error {
		req := energyQuery{
			Steps:        c.QueryInt("steps"),
			SleepMinutes: c.QueryInt("sleepMinutes"),
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c.JSON(scoring.ComputeEnergy(req.Steps, req.SleepMinutes))
	})
}

// locationQuery holds query parameters for identifying a location.
type locationQuery struct {
	City    string `validate:"required"`
	Country string `validate:"required"`
}

func (l locationQuery) toLocation() envdata.Location {
	return envdata.Location{
		City:    l.City,
		Country: l.Country,
	}
}

func parseLocationQuery(c *fiber.Ctx) (locationQuery, error) {
	var q locationQuery

	q.City = c.Query("city")
	q.Country = c.Query("country")

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}

// profileQuery holds the personal fields for avatar state computation. All
// fields are optional; missing ones fall back to the calculators' neutral
// defaults.
type profileQuery struct {
	SleepHours    *float64
	SleepMinutes  int     `validate:"gte=0"`
	Steps         int     `validate:"gte=0"`
	CommuteMode   string  `validate:"omitempty,oneof=walk bike transit wfh car"`
	BaseSkinTone  float64 `validate:"gte=-1,lte=1"`
	ExposureHours *float64

	ManualAnimation      bool
	DisableStressVisuals bool
}

func (p profileQuery) toProfile() avatar.Profile {
	return avatar.Profile{
		SleepHours:           p.SleepHours,
		SleepMinutes:         p.SleepMinutes,
		Steps:                p.Steps,
		CommuteMode:          scoring.CommuteMode(p.CommuteMode),
		BaseSkinTone:         p.BaseSkinTone,
		ExposureHours:        p.ExposureHours,
		ManualAnimation:      p.ManualAnimation,
		DisableStressVisuals: p.DisableStressVisuals,
	}
}

func parseProfileQuery(c *fiber.Ctx) (profileQuery, error) {
	q := profileQuery{
		SleepMinutes:    c.QueryInt("sleepMinutes"),
		Steps:           c.QueryInt("steps"),
		CommuteMode:     c.Query("commuteMode"),
		BaseSkinTone:    c.QueryFloat("baseSkinTone"),
		ManualAnimation: c.QueryBool("manualAnimation"),
		// stressVisuals defaults to on; only an explicit false disables it.
		DisableStressVisuals: !c.QueryBool("stressVisuals", true),
	}

	var err error
	if q.SleepHours, err = optionalFloat(c, "sleepHours"); err != nil {
		return q, err
	}
	if q.ExposureHours, err = optionalFloat(c, "exposureHours"); err != nil {
		return q, err
	}

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}

// optionalFloat distinguishes "absent" from "zero" for pointer fields.
func optionalFloat(c *fiber.Ctx, key string) (*float64, error) {
	s := c.Query(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, errors.New("invalid " + key + ": must be a number")
	}
	return &v, nil
}

// energyQuery holds query parameters for the energy score endpoint.
type energyQuery struct {
	Steps        int `validate:"gte=0"`
	SleepMinutes int `validate:"gte=0"`
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	Location locationQuery
	From     time.Time `validate:"required"`
	To       time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	loc, err := parseLocationQuery(c)
	if err != nil {
		return err
	}
	h.Location = loc

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}

package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/smokyabdulrahman/salat/internal/astro"
	"github.com/smokyabdulrahman/salat/internal/calc"
	"github.com/smokyabdulrahman/salat/internal/method"
)

// handleHealth is the liveness endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, map[string]string{"status": "ok"})
}

// request parsing ----------------------------------------------------------

// calcRequest is the decoded query-string input shared by the timing
// endpoints.
type calcRequest struct {
	date   astro.Date
	coords astro.Coordinates
	opts   calc.Options
}

// parseCalcRequest decodes coordinates and options from the query string,
// falling back to the server's configured defaults.
func (s *Server) parseCalcRequest(r *http.Request, date astro.Date) (*calcRequest, error) {
	q := r.URL.Query()

	coords := astro.Coordinates{
		Latitude:  s.cfg.DefaultLatitude,
		Longitude: s.cfg.DefaultLongitude,
		Elevation: s.cfg.DefaultElevation,
	}

	var err error
	if v := q.Get("latitude"); v != "" {
		if coords.Latitude, err = strconv.ParseFloat(v, 64); err != nil {
			return nil, fmt.Errorf("invalid latitude %q", v)
		}
	}
	if v := q.Get("longitude"); v != "" {
		if coords.Longitude, err = strconv.ParseFloat(v, 64); err != nil {
			return nil, fmt.Errorf("invalid longitude %q", v)
		}
	}
	if v := q.Get("elevation"); v != "" {
		if coords.Elevation, err = strconv.ParseFloat(v, 64); err != nil {
			return nil, fmt.Errorf("invalid elevation %q", v)
		}
	}
	if coords.Latitude == 0 && coords.Longitude == 0 {
		return nil, fmt.Errorf("latitude and longitude are required")
	}

	methodName := s.cfg.DefaultMethod
	if v := q.Get("method"); v != "" {
		methodName = v
	}
	id, err := method.Parse(methodName)
	if err != nil {
		return nil, err
	}

	opts := calc.Options{Method: id}

	if v := q.Get("school"); v != "" {
		if opts.School, err = method.ParseAsrSchool(v); err != nil {
			return nil, err
		}
	}
	if v := q.Get("highlat"); v != "" {
		if opts.HighLatRule, err = method.ParseHighLatitudeRule(v); err != nil {
			return nil, err
		}
	}
	if v := q.Get("shafaq"); v != "" {
		shafaq, err := method.ParseShafaq(v)
		if err != nil {
			return nil, err
		}
		opts.Overrides.Shafaq = &shafaq
	}

	// Per-prayer minute adjustments, e.g. adjust_fajr=-3.
	adjust := &opts.Adjustments
	for name, field := range map[string]*float64{
		"adjust_fajr":    &adjust.Fajr,
		"adjust_sunrise": &adjust.Sunrise,
		"adjust_dhuhr":   &adjust.Dhuhr,
		"adjust_asr":     &adjust.Asr,
		"adjust_maghrib": &adjust.Maghrib,
		"adjust_isha":    &adjust.Isha,
	} {
		if v := q.Get(name); v != "" {
			if *field, err = strconv.ParseFloat(v, 64); err != nil {
				return nil, fmt.Errorf("invalid %s %q", name, v)
			}
		}
	}

	return &calcRequest{date: date, coords: coords, opts: opts}, nil
}

// parseDateParam decodes the {date} path segment as YYYY-MM-DD.
func parseDateParam(r *http.Request) (astro.Date, error) {
	raw := chi.URLParam(r, "date")
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return astro.Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", raw)
	}
	return astro.DateOf(t), nil
}

// handlers ------------------------------------------------------------------

// timingsPayload is the success body of the timing endpoints. Instants are
// RFC 3339 UTC.
type timingsPayload struct {
	Date     string            `json:"date"`
	Method   string            `json:"method"`
	Location locationPayload   `json:"location"`
	Timings  map[string]string `json:"timings"`
	Warnings []string          `json:"warnings,omitempty"`
}

type locationPayload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Elevation float64 `json:"elevation,omitempty"`
}

func (s *Server) handleTimingsToday(w http.ResponseWriter, r *http.Request) {
	s.serveTimings(w, r, astro.DateOf(time.Now()))
}

func (s *Server) handleTimings(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateParam(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	s.serveTimings(w, r, date)
}

func (s *Server) serveTimings(w http.ResponseWriter, r *http.Request, date astro.Date) {
	req, err := s.parseCalcRequest(r, date)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	// The engine usually returns best-effort times alongside PolarUnresolved
	// and Validation errors; when it does, those ship in the error envelope so
	// clients still see the instants that did resolve.
	times, err := calc.Times(req.date, req.coords, req.opts)
	if times == nil {
		s.writeCalcError(w, err, nil)
		return
	}

	payload := buildTimingsPayload(date, req, times)
	if err != nil {
		s.writeCalcError(w, err, payload)
		return
	}

	writeSuccess(w, payload)
}

// buildTimingsPayload serializes a computed day, omitting instants the
// engine could not resolve.
func buildTimingsPayload(date astro.Date, req *calcRequest, times *calc.PrayerTimes) timingsPayload {
	payload := timingsPayload{
		Date:   date.String(),
		Method: req.opts.Method.String(),
		Location: locationPayload{
			Latitude:  req.coords.Latitude,
			Longitude: req.coords.Longitude,
			Elevation: req.coords.Elevation,
		},
		Timings: make(map[string]string),
	}

	instants := map[string]time.Time{
		"fajr":    times.Fajr,
		"sunrise": times.Sunrise,
		"dhuhr":   times.Dhuhr,
		"asr":     times.Asr,
		"sunset":  times.Sunset,
		"maghrib": times.Maghrib,
		"isha":    times.Isha,
	}
	for name, t := range instants {
		if !t.IsZero() {
			payload.Timings[name] = t.Format(time.RFC3339)
		}
	}

	for _, warn := range times.Warnings {
		payload.Warnings = append(payload.Warnings, warn.String())
	}
	return payload
}

// sunnahPayload is the success body of the sunnah endpoint.
type sunnahPayload struct {
	Date          string          `json:"date"`
	Location      locationPayload `json:"location"`
	DuhaStart     string          `json:"duha_start"`
	DuhaEnd       string          `json:"duha_end"`
	FirstThird    string          `json:"first_third_of_night"`
	MiddleOfNight string          `json:"middle_of_night"`
	Midnight      string          `json:"midnight"`
	LastThird     string          `json:"last_third_of_night"`
	NightMinutes  int             `json:"night_duration_minutes"`
}

func (s *Server) handleSunnah(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateParam(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	req, err := s.parseCalcRequest(r, date)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	sunnah, err := calc.Sunnah(req.date, req.coords, req.opts)
	if sunnah == nil {
		s.writeCalcError(w, err, nil)
		return
	}

	payload := sunnahPayload{
		Date: date.String(),
		Location: locationPayload{
			Latitude:  req.coords.Latitude,
			Longitude: req.coords.Longitude,
			Elevation: req.coords.Elevation,
		},
		DuhaStart:     sunnah.DuhaStart.Format(time.RFC3339),
		DuhaEnd:       sunnah.DuhaEnd.Format(time.RFC3339),
		FirstThird:    sunnah.FirstThirdOfNight.Format(time.RFC3339),
		MiddleOfNight: sunnah.MiddleOfNight.Format(time.RFC3339),
		Midnight:      sunnah.Midnight.Format(time.RFC3339),
		LastThird:     sunnah.LastThirdOfNight.Format(time.RFC3339),
		NightMinutes:  sunnah.NightDuration,
	}
	if err != nil {
		s.writeCalcError(w, err, payload)
		return
	}

	writeSuccess(w, payload)
}

// methodPayload describes one registry entry.
type methodPayload struct {
	Name      string  `json:"name"`
	FajrAngle float64 `json:"fajr_angle"`
	Isha      string  `json:"isha"`
	Maghrib   string  `json:"maghrib"`
	Midnight  string  `json:"midnight"`
	Shafaq    string  `json:"shafaq"`
}

func (s *Server) handleMethods(w http.ResponseWriter, r *http.Request) {
	var out []methodPayload
	for _, id := range method.IDs() {
		p := id.Params()
		out = append(out, methodPayload{
			Name:      id.String(),
			FajrAngle: p.FajrAngle,
			Isha:      p.Isha.String(),
			Maghrib:   p.Maghrib.String(),
			Midnight:  p.Midnight.String(),
			Shafaq:    p.Shafaq.String(),
		})
	}
	writeSuccess(w, out)
}

// writeCalcError maps engine errors onto HTTP statuses and codes. data,
// when non-nil, is the best-effort partial result attached to 422
// responses.
func (s *Server) writeCalcError(w http.ResponseWriter, err error, data interface{}) {
	var calcErr *calc.CalculationError
	if errors.As(err, &calcErr) {
		switch calcErr.Kind {
		case calc.InvalidInput:
			writeBadRequest(w, calcErr.Error())
		case calc.PolarUnresolved:
			writeUnprocessable(w, calcErr.Error(), "POLAR_UNRESOLVED", data)
		default:
			writeUnprocessable(w, calcErr.Error(), "VALIDATION_FAILED", data)
		}
		return
	}
	s.log.Error().Err(err).Msg("calculation failed")
	writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
}

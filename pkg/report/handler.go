package report

import (
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/weekbrief/weekbrief/internal/rest"
)

type DayBucketDTO struct {
	Date             string `json:"date"`
	MeetingCount     int    `json:"meetingCount"`
	TotalTime        int    `json:"totalTime"`
	WorkingHoursTime int    `json:"workingHoursTime"`
	AfterHoursTime   int    `json:"afterHoursTime"`
}

type CategoryStatsDTO struct {
	Category  string `json:"category"`
	Count     int    `json:"count"`
	TotalTime int    `json:"totalTime"`
}

type WeekSummaryDTO struct {
	StartDate        string             `json:"startDate"`
	EndDate          string             `json:"endDate"`
	Days             []DayBucketDTO     `json:"days"`
	Categories       []CategoryStatsDTO `json:"categories"`
	TotalEvents      int                `json:"totalEvents"`
	TotalTime        int                `json:"totalTime"`
	WorkingHoursTime int                `json:"workingHoursTime"`
	AfterHoursTime   int                `json:"afterHoursTime"`
}

type InsightDTO struct {
	Text string `json:"text"`
	Kind string `json:"kind"`
}

type KeyMeetingDTO struct {
	Title         string `json:"title"`
	Category      string `json:"category"`
	StartTime     string `json:"startTime"`
	Duration      int    `json:"duration"`
	AttendeeCount int    `json:"attendeeCount"`
}

type UpcomingPreviewDTO struct {
	StartDate   string          `json:"startDate"`
	EndDate     string          `json:"endDate"`
	TotalEvents int             `json:"totalEvents"`
	KeyMeetings []KeyMeetingDTO `json:"keyMeetings"`
	FocusDays   []string        `json:"focusDays"`
}

type ReportDTO struct {
	Id          string             `json:"id"`
	GeneratedAt time.Time          `json:"generatedAt"`
	Week        WeekSummaryDTO     `json:"week"`
	Insights    []InsightDTO       `json:"insights"`
	Narrative   string             `json:"narrative,omitempty"`
	Upcoming    UpcomingPreviewDTO `json:"upcoming"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetLatest returns the most recently generated report.
func (h *Handler) GetLatest(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	result, ok := h.service.LatestReport()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "No report has been generated yet",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	if err := json.NewEncoder(w).Encode(toDTO(result)); err != nil {
		log.Errorf("failed to encode report: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toDTO(r Report) ReportDTO {
	dto := ReportDTO{
		Id:          r.Id,
		GeneratedAt: r.GeneratedAt,
		Narrative:   r.Narrative,
		Week: WeekSummaryDTO{
			StartDate:        r.Week.StartDate.Format("2006-01-02"),
			EndDate:          r.Week.EndDate.Format("2006-01-02"),
			TotalEvents:      r.Week.TotalEvents,
			TotalTime:        int(r.Week.TotalTime.Seconds()),
			WorkingHoursTime: int(r.Week.WorkingHoursTime.Seconds()),
			AfterHoursTime:   int(r.Week.AfterHoursTime.Seconds()),
		},
		Upcoming: UpcomingPreviewDTO{
			StartDate:   r.Upcoming.StartDate.Format("2006-01-02"),
			EndDate:     r.Upcoming.EndDate.Format("2006-01-02"),
			TotalEvents: r.Upcoming.TotalEvents,
		},
	}
	for _, day := range r.Week.Days {
		dto.Week.Days = append(dto.Week.Days, DayBucketDTO{
			Date:             day.Date.Format("2006-01-02"),
			MeetingCount:     day.MeetingCount,
			TotalTime:        int(day.TotalTime.Seconds()),
			WorkingHoursTime: int(day.WorkingHoursTime.Seconds()),
			AfterHoursTime:   int(day.AfterHoursTime.Seconds()),
		})
	}
	for _, cs := range r.Week.Categories {
		dto.Week.Categories = append(dto.Week.Categories, CategoryStatsDTO{
			Category:  string(cs.Category),
			Count:     cs.Count,
			TotalTime: int(cs.TotalTime.Seconds()),
		})
	}
	for _, i := range r.Insights {
		dto.Insights = append(dto.Insights, InsightDTO{Text: i.Text, Kind: string(i.Kind)})
	}
	for _, m := range r.Upcoming.KeyMeetings {
		dto.Upcoming.KeyMeetings = append(dto.Upcoming.KeyMeetings, KeyMeetingDTO{
			Title:         m.Title,
			Category:      string(m.Category),
			StartTime:     m.StartTime.Format(time.RFC3339),
			Duration:      int(m.Duration.Seconds()),
			AttendeeCount: m.AttendeeCount,
		})
	}
	for _, day := range r.Upcoming.FocusDays {
		dto.Upcoming.FocusDays = append(dto.Upcoming.FocusDays, day.Format("2006-01-02"))
	}
	return dto
}

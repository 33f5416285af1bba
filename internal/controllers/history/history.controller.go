package historyController

import (
	"context"
	"errors"
	"sort"
	"time"

	"audora/internal/database"
	"audora/internal/logger"
	. "audora/internal/models"
	"audora/internal/repositories"
	"audora/internal/services"
	"audora/internal/utils"

	"github.com/google/uuid"
)

const recentlyPlayedWindow = 10

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
)

type HistoryController struct {
	historyRepo repositories.HistoryRepository
	audioRepo   repositories.AudioRepository
	db          database.DB
}

type RecordProgressRequest struct {
	AudioID  string  `json:"audioId"`
	Progress float64 `json:"progress"`
	Date     string  `json:"date"`
}

type RemoveRequest struct {
	All       bool     `json:"all"`
	Histories []string `json:"histories"`
}

// HistoryEntry is one listen inside a day group
type HistoryEntry struct {
	ID      string    `json:"id"`
	AudioID string    `json:"audioId"`
	Date    time.Time `json:"date"`
	Title   string    `json:"title"`
}

// HistoryDayGroup bundles the entries of one UTC calendar day
type HistoryDayGroup struct {
	Date   string         `json:"date"`
	Audios []HistoryEntry `json:"audios"`
}

// RecentlyPlayedItem is an audio summary annotated with playback position
type RecentlyPlayedItem struct {
	AudioSummary
	Date     time.Time `json:"date"`
	Progress float64   `json:"progress"`
	Index    int       `json:"index"`
}

type HistoryControllerInterface interface {
	RecordProgress(ctx context.Context, user *User, request *RecordProgressRequest) error
	Remove(ctx context.Context, user *User, request *RemoveRequest) error
	List(ctx context.Context, user *User, page utils.Pagination) ([]HistoryDayGroup, error)
	RecentlyPlayed(ctx context.Context, user *User) ([]RecentlyPlayedItem, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	db database.DB,
) HistoryControllerInterface {
	return &HistoryController{
		historyRepo: repos.History,
		audioRepo:   repos.Audio,
		db:          db,
	}
}

func parseDate(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Now().UTC(), nil
	}
	return time.Parse(time.RFC3339, dateStr)
}

// RecordProgress stores one listen. A second listen of the same audio on the
// same UTC day overwrites the existing entry in place; anything else is
// prepended and becomes the last-played pointer.
func (c *HistoryController) RecordProgress(
	ctx context.Context,
	user *User,
	request *RecordProgressRequest,
) error {
	log := logger.NewWithContext(ctx, "historyController").Function("RecordProgress")

	audioID, err := uuid.Parse(request.AudioID)
	if err != nil {
		return log.ErrorWithType(ErrValidation, "invalid audio id", "audioID", request.AudioID)
	}

	if request.Progress < 0 {
		return log.ErrorWithType(ErrValidation, "progress cannot be negative")
	}

	date, err := parseDate(request.Date)
	if err != nil {
		return log.ErrorWithType(ErrValidation, "invalid date, expected RFC3339", "error", err)
	}

	event := PlayEvent{
		ID:       uuid.New(),
		AudioID:  audioID,
		Progress: request.Progress,
		Date:     date,
	}

	history, err := c.historyRepo.GetByOwner(ctx, user.ID)
	if err != nil {
		return log.Error("failed to load history", "error", err, "userID", user.ID)
	}

	if history == nil {
		history = &History{OwnerID: user.ID}
		history.Prepend(event)
		if err := c.historyRepo.Create(ctx, history); err != nil {
			return log.Error("failed to create history", "error", err, "userID", user.ID)
		}
		return nil
	}

	if i := history.FindSameDay(audioID, date); i >= 0 {
		history.All[i].Progress = request.Progress
		history.All[i].Date = date
	} else {
		history.Prepend(event)
	}

	if err := c.historyRepo.Update(ctx, history); err != nil {
		return log.Error("failed to update history", "error", err, "userID", user.ID)
	}

	return nil
}

// Remove deletes the whole log or just the named entries. Unknown ids are
// ignored; removing from an absent log is a no-op.
func (c *HistoryController) Remove(
	ctx context.Context,
	user *User,
	request *RemoveRequest,
) error {
	log := logger.NewWithContext(ctx, "historyController").Function("Remove")

	if request.All {
		if err := c.historyRepo.DeleteByOwner(ctx, user.ID); err != nil {
			return log.Error("failed to delete history", "error", err, "userID", user.ID)
		}
		return nil
	}

	ids := make([]uuid.UUID, 0, len(request.Histories))
	for _, raw := range request.Histories {
		id, err := uuid.Parse(raw)
		if err != nil {
			return log.ErrorWithType(ErrValidation, "invalid history id", "historyID", raw)
		}
		ids = append(ids, id)
	}

	history, err := c.historyRepo.GetByOwner(ctx, user.ID)
	if err != nil {
		return log.Error("failed to load history", "error", err, "userID", user.ID)
	}
	if history == nil {
		return nil
	}

	history.RemoveByIDs(ids)
	if err := c.historyRepo.Update(ctx, history); err != nil {
		return log.Error("failed to update history", "error", err, "userID", user.ID)
	}

	return nil
}

// List returns one page of the log grouped by UTC calendar day, newest day
// first. The page window is cut before grouping, so a day straddling a page
// boundary shows up partially. Entries whose audio no longer exists are
// dropped.
func (c *HistoryController) List(
	ctx context.Context,
	user *User,
	page utils.Pagination,
) ([]HistoryDayGroup, error) {
	log := logger.NewWithContext(ctx, "historyController").Function("List")

	history, err := c.historyRepo.GetByOwner(ctx, user.ID)
	if err != nil {
		return nil, log.Error("failed to load history", "error", err, "userID", user.ID)
	}
	if history == nil {
		return []HistoryDayGroup{}, nil
	}

	window := utils.SlicePage(history.All, page)

	ids := make([]uuid.UUID, 0, len(window))
	for _, event := range window {
		ids = append(ids, event.AudioID)
	}

	summaries, err := c.audioRepo.GetSummariesByIDs(ctx, ids)
	if err != nil {
		return nil, log.Error("failed to hydrate history", "error", err, "userID", user.ID)
	}

	titles := make(map[string]string, len(summaries))
	for _, summary := range summaries {
		titles[summary.ID] = summary.Title
	}

	grouped := make(map[string][]HistoryEntry)
	for _, event := range window {
		title, ok := titles[event.AudioID.String()]
		if !ok {
			continue
		}
		key := utils.DayKey(event.Date)
		grouped[key] = append(grouped[key], HistoryEntry{
			ID:      event.ID.String(),
			AudioID: event.AudioID.String(),
			Date:    event.Date,
			Title:   title,
		})
	}

	days := make([]string, 0, len(grouped))
	for day := range grouped {
		days = append(days, day)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	groups := make([]HistoryDayGroup, 0, len(days))
	for _, day := range days {
		groups = append(groups, HistoryDayGroup{Date: day, Audios: grouped[day]})
	}

	return groups, nil
}

// RecentlyPlayed returns up to the ten newest log entries as annotated audio
// summaries, sorted by listen date. The window is fixed and does not
// paginate.
func (c *HistoryController) RecentlyPlayed(
	ctx context.Context,
	user *User,
) ([]RecentlyPlayedItem, error) {
	log := logger.NewWithContext(ctx, "historyController").Function("RecentlyPlayed")

	history, err := c.historyRepo.GetByOwner(ctx, user.ID)
	if err != nil {
		return nil, log.Error("failed to load history", "error", err, "userID", user.ID)
	}
	if history == nil {
		return []RecentlyPlayedItem{}, nil
	}

	window := make([]PlayEvent, len(history.All))
	copy(window, history.All)
	if len(window) > recentlyPlayedWindow {
		window = window[:recentlyPlayedWindow]
	}
	sort.SliceStable(window, func(i, j int) bool {
		return window[i].Date.After(window[j].Date)
	})

	ids := make([]uuid.UUID, 0, len(window))
	for _, event := range window {
		ids = append(ids, event.AudioID)
	}

	summaries, err := c.audioRepo.GetSummariesByIDs(ctx, ids)
	if err != nil {
		return nil, log.Error("failed to hydrate recently played", "error", err, "userID", user.ID)
	}

	byID := make(map[string]AudioSummary, len(summaries))
	for _, summary := range summaries {
		byID[summary.ID] = summary
	}

	items := make([]RecentlyPlayedItem, 0, len(window))
	for i, event := range window {
		summary, ok := byID[event.AudioID.String()]
		if !ok {
			continue
		}
		items = append(items, RecentlyPlayedItem{
			AudioSummary: summary,
			Date:         event.Date,
			Progress:     event.Progress,
			Index:        i,
		})
	}

	return items, nil
}

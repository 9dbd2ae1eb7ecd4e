package game

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/charlotte-zhuang/wordle/wordle"
)

// Settings keys used to persist the daily word.
const (
	settingDailyWord = "daily_word"
	settingDailyDate = "daily_date"
)

const dateLayout = "2006-01-02"

// SettingsStore persists small key/value settings.
type SettingsStore interface {
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error
}

// Daily holds the word shared by every game played on one calendar day.
// Rotate is called from the scheduler goroutine, so all access is locked.
type Daily struct {
	mu       sync.Mutex
	adv      *wordle.Adversary
	settings SettingsStore
	loc      *time.Location
	date     string
}

// NewDaily creates a Daily over adv. Dates are computed in loc.
func NewDaily(adv *wordle.Adversary, settings SettingsStore, loc *time.Location) *Daily {
	return &Daily{adv: adv, settings: settings, loc: loc}
}

// Restore reuses the stored word if it was chosen on the same day as now,
// and rotates to a new word otherwise.
func (d *Daily) Restore(now time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	today := now.In(d.loc).Format(dateLayout)
	date, err := d.settings.GetSetting(settingDailyDate)
	if err != nil {
		return fmt.Errorf("daily: load date: %w", err)
	}
	word, err := d.settings.GetSetting(settingDailyWord)
	if err != nil {
		return fmt.Errorf("daily: load word: %w", err)
	}

	if date == today && word != "" {
		if err := d.adv.SetTarget(word); err == nil {
			d.date = today
			slog.Info("daily word restored", "date", today)
			return nil
		}
		slog.Warn("stored daily word is invalid, rotating", "word", word)
	}
	_, err = d.rotate(today)
	return err
}

// Rotate draws a new word for the day containing now and persists it.
func (d *Daily) Rotate(now time.Time) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rotate(now.In(d.loc).Format(dateLayout))
}

func (d *Daily) rotate(date string) (string, error) {
	word := d.adv.NewWord()
	if err := d.settings.SetSetting(settingDailyWord, word); err != nil {
		return "", fmt.Errorf("daily: save word: %w", err)
	}
	if err := d.settings.SetSetting(settingDailyDate, date); err != nil {
		return "", fmt.Errorf("daily: save date: %w", err)
	}
	d.date = date
	slog.Info("daily word rotated", "date", date)
	return word, nil
}

// Date returns the day the current word belongs to (YYYY-MM-DD).
func (d *Daily) Date() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.date
}

// Target returns the current daily word.
func (d *Daily) Target() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.adv.Target()
}

// Session is one game against a daily word. The word is fixed when the
// session starts; later rotations do not change it.
type Session struct {
	Date   string
	Target string
}

// NewSession starts a game against the current word.
func (d *Daily) NewSession() Session {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Session{Date: d.date, Target: d.adv.Target()}
}

// Judge scores guess against the session's word.
func (s Session) Judge(guess string) (wordle.Feedback, error) {
	return wordle.JudgeGuess(guess, s.Target)
}

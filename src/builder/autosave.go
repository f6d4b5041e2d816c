package builder

import (
	"context"
	"sync"
	"time"

	"github.com/instantfolio/Backend-Instant-Portfolio/src/models"
)

// SaveStatus is the user-visible outcome of the most recent save attempt.
type SaveStatus string

const (
	StatusIdle   SaveStatus = "idle"
	StatusSaving SaveStatus = "saving"
	StatusSaved  SaveStatus = "saved"
	StatusError  SaveStatus = "error"
)

// PortfolioAPI is the slice of the server the auto-save loop talks to.
type PortfolioAPI interface {
	GetPortfolio(ctx context.Context) (*models.Portfolio, error)
	CreatePortfolio(ctx context.Context, patch *models.PortfolioPatch) (*models.Portfolio, error)
	UpdatePortfolio(ctx context.Context, patch *models.PortfolioPatch) (*models.Portfolio, error)
}

// Options tune the auto-save timings. Zero values take the defaults.
type Options struct {
	// DebounceWindow is the quiet period after the last edit before a save
	// is dispatched; every new edit restarts it.
	DebounceWindow time.Duration
	// SavedDisplay and ErrorDisplay are how long the saved/error badges stay
	// up before the status returns to idle. The error badge stays longer so
	// it cannot be missed.
	SavedDisplay time.Duration
	ErrorDisplay time.Duration
	// RequestTimeout bounds each dispatched save.
	RequestTimeout time.Duration
	// OnStatusChange, when set, is called with every status transition.
	OnStatusChange func(SaveStatus)
}

const (
	defaultDebounceWindow = 2 * time.Second
	defaultSavedDisplay   = 2 * time.Second
	defaultErrorDisplay   = 5 * time.Second
	defaultRequestTimeout = 15 * time.Second
)

// Builder owns the draft and keeps the server copy eventually consistent
// with it. All methods are safe for concurrent use.
type Builder struct {
	api  PortfolioAPI
	opts Options

	mu          sync.Mutex
	draft       *Draft
	exists      bool // server currently has a portfolio record
	status      SaveStatus
	lastSaved   time.Time
	editGen     uint64 // bumped on every edit; stale save outcomes are dropped
	saveTimer   *time.Timer
	statusTimer *time.Timer
}

func New(api PortfolioAPI, opts Options) *Builder {
	if opts.DebounceWindow <= 0 {
		opts.DebounceWindow = defaultDebounceWindow
	}
	if opts.SavedDisplay <= 0 {
		opts.SavedDisplay = defaultSavedDisplay
	}
	if opts.ErrorDisplay <= 0 {
		opts.ErrorDisplay = defaultErrorDisplay
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	return &Builder{
		api:    api,
		opts:   opts,
		draft:  DefaultDraft(),
		status: StatusIdle,
	}
}

// Load populates the draft from the server. A missing portfolio is not an
// error: it just means the first save must create instead of update. Loading
// never schedules an auto-save; only user edits do.
func (b *Builder) Load(ctx context.Context) error {
	p, err := b.api.GetPortfolio(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case err == nil:
		b.draft = HydrateDraft(p)
		b.exists = true
	case models.IsCode(err, models.CodeNotFound):
		b.draft = DefaultDraft()
		b.exists = false
	default:
		return err
	}
	return nil
}

// Apply mutates the draft synchronously and restarts the debounce window.
// The status drops back to idle immediately: it only ever reflects the most
// recent save attempt, never a queue.
func (b *Builder) Apply(edit func(*Draft)) {
	b.mu.Lock()
	defer b.mu.Unlock()

	edit(b.draft)
	b.editGen++

	if b.statusTimer != nil {
		b.statusTimer.Stop()
		b.statusTimer = nil
	}
	b.setStatusLocked(StatusIdle)

	if b.saveTimer != nil {
		b.saveTimer.Stop()
	}
	b.saveTimer = time.AfterFunc(b.opts.DebounceWindow, b.flush)
}

// Typed edit helpers used by the editor panes.

func (b *Builder) SetPersonalInfo(info models.PersonalInfo) {
	b.Apply(func(d *Draft) { d.PersonalInfo = info })
}

func (b *Builder) SetEducation(entries []EducationDraft) {
	b.Apply(func(d *Draft) { d.Education = entries })
}

func (b *Builder) SetExperiences(entries []ExperienceDraft) {
	b.Apply(func(d *Draft) { d.Experiences = entries })
}

func (b *Builder) SetProjects(entries []ProjectDraft) {
	b.Apply(func(d *Draft) { d.Projects = entries })
}

func (b *Builder) SetSkills(entries []SkillDraft) {
	b.Apply(func(d *Draft) { d.Skills = entries })
}

func (b *Builder) SetSectionOrder(order []string) {
	b.Apply(func(d *Draft) { d.SectionOrder = order })
}

// ToggleSection flips a section in and out of the enabled set.
func (b *Builder) ToggleSection(section string) {
	b.Apply(func(d *Draft) {
		for i, s := range d.EnabledSections {
			if s == section {
				d.EnabledSections = append(d.EnabledSections[:i], d.EnabledSections[i+1:]...)
				return
			}
		}
		d.EnabledSections = append(d.EnabledSections, section)
	})
}

// flush runs when the debounce timer fires: snapshot the draft, push it, and
// report the outcome unless a newer edit has already superseded this attempt.
func (b *Builder) flush() {
	b.mu.Lock()
	b.saveTimer = nil
	gen := b.editGen
	patch := b.draft.ToPatch()
	exists := b.exists
	b.setStatusLocked(StatusSaving)
	b.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), b.opts.RequestTimeout)
	defer cancel()
	err := b.push(ctx, patch, exists)

	b.mu.Lock()
	defer b.mu.Unlock()

	if err == nil {
		b.exists = true
	}
	if gen != b.editGen {
		// A newer edit already reset the status and armed its own timer;
		// this outcome is stale and must not be displayed.
		return
	}

	if err != nil {
		// The draft is not rolled back; the next debounce cycle retries
		// with the current (possibly further edited) draft.
		b.setStatusLocked(StatusError)
		b.armStatusRevertLocked(gen, b.opts.ErrorDisplay)
		return
	}

	b.lastSaved = time.Now()
	b.setStatusLocked(StatusSaved)
	b.armStatusRevertLocked(gen, b.opts.SavedDisplay)
}

func (b *Builder) push(ctx context.Context, patch *models.PortfolioPatch, exists bool) error {
	if exists {
		_, err := b.api.UpdatePortfolio(ctx, patch)
		return err
	}
	_, err := b.api.CreatePortfolio(ctx, patch)
	if models.IsCode(err, models.CodeConflict) {
		// Another session created the record since our load; fall through
		// to the update path.
		_, err = b.api.UpdatePortfolio(ctx, patch)
	}
	return err
}

// Save is the explicit manual save: same transform and create-or-update
// sequence, run synchronously, independent of the debounce timer and of the
// auto-save status display.
func (b *Builder) Save(ctx context.Context) error {
	b.mu.Lock()
	patch := b.draft.ToPatch()
	exists := b.exists
	b.mu.Unlock()

	err := b.push(ctx, patch, exists)

	if err == nil {
		b.mu.Lock()
		b.exists = true
		b.lastSaved = time.Now()
		b.mu.Unlock()
	}
	return err
}

// Close cancels any pending debounce or status timers. In-flight requests
// are not aborted.
func (b *Builder) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.saveTimer != nil {
		b.saveTimer.Stop()
		b.saveTimer = nil
	}
	if b.statusTimer != nil {
		b.statusTimer.Stop()
		b.statusTimer = nil
	}
}

// Status returns the current save status.
func (b *Builder) Status() SaveStatus {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status
}

// LastSaved returns when a save last succeeded, zero if never.
func (b *Builder) LastSaved() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastSaved
}

// Snapshot returns a copy of the current draft for rendering.
func (b *Builder) Snapshot() Draft {
	b.mu.Lock()
	defer b.mu.Unlock()

	d := *b.draft
	d.Education = append([]EducationDraft{}, b.draft.Education...)
	d.Experiences = append([]ExperienceDraft{}, b.draft.Experiences...)
	d.Projects = append([]ProjectDraft{}, b.draft.Projects...)
	d.Skills = append([]SkillDraft{}, b.draft.Skills...)
	d.SectionOrder = append([]string{}, b.draft.SectionOrder...)
	d.EnabledSections = append([]string{}, b.draft.EnabledSections...)
	return d
}

func (b *Builder) setStatusLocked(s SaveStatus) {
	if b.status == s {
		return
	}
	b.status = s
	if b.opts.OnStatusChange != nil {
		b.opts.OnStatusChange(s)
	}
}

func (b *Builder) armStatusRevertLocked(gen uint64, after time.Duration) {
	if b.statusTimer != nil {
		b.statusTimer.Stop()
	}
	b.statusTimer = time.AfterFunc(after, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if gen != b.editGen {
			return
		}
		b.setStatusLocked(StatusIdle)
	})
}

package reminder

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Notifier delivers a reminder notification to the user.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// Reminder is a user-defined scheduled notification.
type Reminder struct {
	ID      int
	Message string
	Rule    Rule
	Active  bool

	entryID cron.EntryID
	bound   bool
	// firing counts in-flight deliveries; Delete waits on it so no
	// delivery of a deleted reminder completes after Delete returns.
	firing *sync.WaitGroup
}

// Store owns the in-memory reminder collection and binds active
// reminders to cron triggers. There is no durable storage: reminders
// live for the process lifetime only.
type Store struct {
	mu       sync.Mutex
	cron     *cron.Cron
	notifier Notifier
	running  bool
	seq      int
	items    []*Reminder
}

func NewStore(notifier Notifier) *Store {
	return &Store{
		cron:     cron.New(cron.WithLocation(time.Local)),
		notifier: notifier,
		seq:      1,
	}
}

// Start runs the trigger clock and binds every active reminder.
// Reminders created afterward are bound immediately on creation.
func (s *Store) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = true
	for _, r := range s.items {
		if r.Active && !r.bound {
			s.bind(r)
		}
	}
	s.cron.Start()
	log.Printf("⏰ Reminder scheduler started (%d active)", s.countActive())
}

// Stop halts the trigger clock and waits for in-flight firings.
func (s *Store) Stop() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Printf("⏰ Reminder scheduler stopped")
}

// Create validates the rule, stores the reminder and binds it if the
// scheduler is running. IDs are monotonic and never reused within the
// process lifetime, even after deletion.
func (s *Store) Create(message string, rule Rule) (Reminder, error) {
	if err := rule.Validate(); err != nil {
		return Reminder{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r := &Reminder{
		ID:      s.seq,
		Message: message,
		Rule:    rule,
		Active:  true,
		firing:  new(sync.WaitGroup),
	}
	s.seq++
	s.items = append(s.items, r)

	if s.running {
		s.bind(r)
	}

	log.Printf("✅ Reminder #%d created: %q %s", r.ID, r.Message, rule.Describe())
	return *r, nil
}

// bind attaches the reminder to its cron trigger. Caller holds s.mu.
// A binding failure is not retried: the reminder stays stored but
// unbound and is never fired.
func (s *Store) bind(r *Reminder) {
	id := r.ID
	entryID, err := s.cron.AddFunc(r.Rule.CronSpec(), func() {
		s.fire(id)
	})
	if err != nil {
		log.Printf("❌ Failed to bind reminder #%d (%q): %v", r.ID, r.Rule.CronSpec(), err)
		return
	}
	r.entryID = entryID
	r.bound = true
}

// fire dispatches one occurrence of the reminder. One-shot reminders
// deactivate and cancel their own trigger as part of the same firing.
func (s *Store) fire(id int) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("❌ Reminder #%d firing panicked: %v", id, rec)
		}
	}()

	s.mu.Lock()
	r := s.find(id)
	if r == nil || !r.Active {
		s.mu.Unlock()
		return
	}
	message := r.Message
	r.firing.Add(1)
	defer r.firing.Done()
	var oneShotEntry cron.EntryID
	oneShot := r.Rule.Kind == Once
	if oneShot {
		r.Active = false
		oneShotEntry = r.entryID
		r.bound = false
	}
	s.mu.Unlock()

	if oneShot {
		s.cron.Remove(oneShotEntry)
	}

	log.Printf("⏰ Triggering reminder #%d: %s", id, message)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.notifier.Send(ctx, "⏰ Reminder: "+message); err != nil {
		log.Printf("❌ Failed to deliver reminder #%d: %v", id, err)
	}
}

// Delete stops the reminder's trigger and removes the record. Returns
// false for unknown ids. After Delete returns, no firing of that
// reminder can start and none is still delivering.
func (s *Store) Delete(id int) bool {
	s.mu.Lock()
	idx := -1
	for i, r := range s.items {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return false
	}
	r := s.items[idx]
	bound := r.bound
	entryID := r.entryID
	firing := r.firing
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.mu.Unlock()

	if bound {
		s.cron.Remove(entryID)
	}
	// A firing that passed the Active check before the removal may still
	// be delivering; wait it out so nothing fires after we return.
	firing.Wait()
	log.Printf("🗑️ Deleted reminder #%d", id)
	return true
}

// List returns all reminders in creation order.
func (s *Store) List() []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Reminder, 0, len(s.items))
	for _, r := range s.items {
		out = append(out, *r)
	}
	return out
}

func (s *Store) find(id int) *Reminder {
	for _, r := range s.items {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func (s *Store) countActive() int {
	n := 0
	for _, r := range s.items {
		if r.Active {
			n++
		}
	}
	return n
}

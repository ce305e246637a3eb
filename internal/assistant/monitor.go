package assistant

import (
	"context"
	"fmt"
	"log"
	"time"

	"accountabot/internal/budget"
	"accountabot/internal/gmail"
	"accountabot/internal/personality"
	"accountabot/internal/spending"
)

// jobTimeout bounds every scheduled job run.
const jobTimeout = 2 * time.Minute

// Monitoring schedule. Times are process-local wall clock.
var schedules = []struct {
	spec string
	name string
	run  func(s *Service, ctx context.Context)
}{
	{"0 * * * *", "hourly spending check", (*Service).checkSpending},
	{"0 * * * *", "hourly budget check", (*Service).checkBudgets},
	{"0 * * * *", "hourly social media check", (*Service).checkSocialMedia},
	{"0 9-21/2 * * *", "email check", (*Service).checkEmail},
	{"0 8 * * *", "morning check-in", (*Service).morningCheckIn},
	{"0 12 * * *", "midday check-in", (*Service).middayCheckIn},
	{"0 21 * * *", "wind-down reminder", (*Service).windDownReminder},
	{"0 22 * * *", "daily summary", (*Service).sendDailySummary},
	{"0 20 * * 0", "weekly summary", (*Service).sendWeeklySummary},
	{"0 0 * * *", "social media reset", (*Service).resetSocialMedia},
	{"0 2 * * *", "activity cleanup", (*Service).cleanActivities},
}

// StartMonitoring registers and starts all scheduled checks.
func (s *Service) StartMonitoring() error {
	for _, job := range schedules {
		job := job
		_, err := s.sched.AddFunc(job.spec, func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("❌ Scheduled %s panicked: %v", job.name, r)
				}
			}()
			ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
			defer cancel()
			job.run(s, ctx)
		})
		if err != nil {
			return fmt.Errorf("schedule %s: %w", job.name, err)
		}
	}
	s.sched.Start()
	log.Printf("📊 Monitoring started (%d scheduled checks)", len(schedules))
	return nil
}

// StopMonitoring halts the schedule and waits for running jobs.
func (s *Service) StopMonitoring() {
	ctx := s.sched.Stop()
	<-ctx.Done()
	log.Printf("📊 Monitoring stopped")
}

func (s *Service) checkSpending(ctx context.Context) {
	s.deps.SpendMonitor.CheckRecent(ctx)
}

// checkBudgets alerts when a tracked budget crosses the warning or
// over-budget line. Good states stay silent.
func (s *Service) checkBudgets(ctx context.Context) {
	for _, period := range []string{"daily", "weekly", "monthly"} {
		if !s.deps.Budgets.HasPeriod(period) {
			continue
		}
		st, err := s.deps.Budgets.Check(ctx, period)
		if err != nil {
			log.Printf("⚠️ Budget check skipped: %v", err)
			return
		}
		s.alertBudget(ctx, st)
	}

	categories, err := s.deps.Budgets.CheckCategories(ctx)
	if err != nil {
		log.Printf("⚠️ Category budget check skipped: %v", err)
		return
	}
	for _, st := range categories {
		if st.State == budget.StateOver {
			s.alertBudget(ctx, st)
		}
	}
}

func (s *Service) alertBudget(ctx context.Context, st budget.Status) {
	var prefix string
	switch st.State {
	case budget.StateOver:
		prefix = "🤖 💸 "
	case budget.StateWarning:
		prefix = "🤖 ⚠️ "
	default:
		return
	}
	text := s.deps.Engine.BudgetAlert(ctx, st)
	if err := s.deps.Dispatcher.Send(ctx, prefix+text); err == nil {
		log.Printf("💸 Budget alert sent (%s %s)", st.Period+st.Category, st.State)
	}
}

func (s *Service) checkSocialMedia(ctx context.Context) {
	for platform, hours := range s.deps.Social.OverLimit() {
		text := s.deps.Engine.SocialMediaAlert(ctx, platform, hours, s.deps.Social.Limit())
		if err := s.deps.Dispatcher.Send(ctx, "🤖 📱 "+text); err == nil {
			log.Printf("📱 Social media alert sent for %s (%.1fh)", platform, hours)
		}
	}
}

func (s *Service) checkEmail(ctx context.Context) {
	if s.deps.Email == nil {
		return
	}
	emails, err := s.deps.Email.ImportantMessages(ctx)
	if err != nil {
		log.Printf("⚠️ Scheduled email check skipped: %v", err)
		return
	}
	if len(emails) == 0 {
		return
	}
	s.dispatch(ctx, gmail.FormatAlert(emails))
}

func (s *Service) morningCheckIn(ctx context.Context) {
	s.dispatch(ctx, "🤖 "+s.deps.Engine.Generate(ctx, personality.MorningPrompt))
}

func (s *Service) middayCheckIn(ctx context.Context) {
	s.dispatch(ctx, "🤖 "+s.deps.Engine.Generate(ctx, personality.MiddayPrompt))
}

func (s *Service) windDownReminder(ctx context.Context) {
	s.dispatch(ctx, "🤖 "+s.deps.Engine.Generate(ctx, personality.WindDownPrompt))
}

func (s *Service) sendDailySummary(ctx context.Context) {
	activitySummary := s.deps.Activities.DailySummary()
	spendingSummary := spending.Analyze(ctx, s.deps.Finance)
	text := s.deps.Engine.Generate(ctx, personality.DailySummaryPrompt(activitySummary, spendingSummary))
	s.dispatch(ctx, "🤖 📋 Daily Recap:\n\n"+text)
}

func (s *Service) sendWeeklySummary(ctx context.Context) {
	s.dispatch(ctx, s.deps.Activities.WeeklySummary())
}

func (s *Service) resetSocialMedia(_ context.Context) {
	s.deps.Social.ResetDaily()
}

func (s *Service) cleanActivities(_ context.Context) {
	s.deps.Activities.CleanOld()
}

func (s *Service) dispatch(ctx context.Context, text string) {
	if text == "" {
		return
	}
	if err := s.deps.Dispatcher.Send(ctx, text); err != nil {
		log.Printf("⚠️ Scheduled notification dropped: %v", err)
	}
}

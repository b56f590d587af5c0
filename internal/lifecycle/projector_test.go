package lifecycle

import (
	"errors"
	"testing"
	"time"

	"github.com/iliyamo/wrestling-roster/internal/model"
)

func period(kind model.PeriodKind, start time.Time, end *time.Time) model.Period {
	return model.Period{
		EntityType: model.EntityWrestler,
		EntityID:   1,
		Kind:       kind,
		StartedAt:  start,
		EndedAt:    end,
	}
}

func TestProjectStatus(t *testing.T) {
	now := date(2024, time.June, 1)
	tests := []struct {
		name    string
		periods []model.Period
		want    model.Status
	}{
		{
			name:    "no periods at all",
			periods: nil,
			want:    model.StatusUnemployed,
		},
		{
			name: "open employment",
			periods: []model.Period{
				period(model.PeriodEmployment, date(2024, time.January, 1), nil),
			},
			want: model.StatusEmployed,
		},
		{
			name: "employment starting in the future",
			periods: []model.Period{
				period(model.PeriodEmployment, date(2024, time.July, 1), nil),
			},
			want: model.StatusFutureEmployed,
		},
		{
			name: "closed employment",
			periods: []model.Period{
				period(model.PeriodEmployment, date(2024, time.January, 1), datePtr(2024, time.March, 1)),
			},
			want: model.StatusReleased,
		},
		{
			name: "open suspension over open employment",
			periods: []model.Period{
				period(model.PeriodEmployment, date(2024, time.January, 1), nil),
				period(model.PeriodSuspension, date(2024, time.February, 1), nil),
			},
			want: model.StatusSuspended,
		},
		{
			name: "open injury wins over open suspension",
			periods: []model.Period{
				period(model.PeriodEmployment, date(2024, time.January, 1), nil),
				period(model.PeriodSuspension, date(2024, time.February, 1), nil),
				period(model.PeriodInjury, date(2024, time.March, 1), nil),
			},
			want: model.StatusInjured,
		},
		{
			name: "open retirement wins over everything",
			periods: []model.Period{
				period(model.PeriodEmployment, date(2024, time.January, 1), datePtr(2024, time.March, 1)),
				period(model.PeriodRetirement, date(2024, time.March, 1), nil),
			},
			want: model.StatusRetired,
		},
		{
			name: "ended retirement discards older employment",
			periods: []model.Period{
				period(model.PeriodEmployment, date(2023, time.January, 1), datePtr(2024, time.March, 1)),
				period(model.PeriodRetirement, date(2024, time.March, 1), datePtr(2024, time.May, 1)),
			},
			want: model.StatusUnemployed,
		},
		{
			name: "re-employment after unretiring",
			periods: []model.Period{
				period(model.PeriodEmployment, date(2023, time.January, 1), datePtr(2024, time.March, 1)),
				period(model.PeriodRetirement, date(2024, time.March, 1), datePtr(2024, time.May, 1)),
				period(model.PeriodEmployment, date(2024, time.May, 15), nil),
			},
			want: model.StatusEmployed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProjectStatus(GroupHistory(tt.periods), now)
			if got != tt.want {
				t.Fatalf("expected status %s, got %s", tt.want, got)
			}
		})
	}
}

func TestProjectStatusIsIdempotent(t *testing.T) {
	now := date(2024, time.June, 1)
	periods := []model.Period{
		period(model.PeriodEmployment, date(2024, time.January, 1), nil),
		period(model.PeriodSuspension, date(2024, time.February, 1), datePtr(2024, time.April, 1)),
	}
	hist := GroupHistory(periods)
	first := ProjectStatus(hist, now)
	for i := 0; i < 5; i++ {
		if got := ProjectStatus(hist, now); got != first {
			t.Fatalf("projection changed between runs: %s then %s", first, got)
		}
	}
}

func TestProjectTitleStatus(t *testing.T) {
	now := date(2024, time.June, 1)
	tests := []struct {
		name    string
		periods []model.Period
		want    model.TitleStatus
	}{
		{
			name:    "never activated",
			periods: nil,
			want:    model.TitleStatusUnactivated,
		},
		{
			name: "open activation",
			periods: []model.Period{
				period(model.PeriodActivation, date(2024, time.January, 1), nil),
			},
			want: model.TitleStatusActive,
		},
		{
			name: "activation scheduled in the future",
			periods: []model.Period{
				period(model.PeriodActivation, date(2024, time.July, 1), nil),
			},
			want: model.TitleStatusUnactivated,
		},
		{
			name: "closed activation",
			periods: []model.Period{
				period(model.PeriodActivation, date(2024, time.January, 1), datePtr(2024, time.March, 1)),
			},
			want: model.TitleStatusInactive,
		},
		{
			name: "open retirement",
			periods: []model.Period{
				period(model.PeriodActivation, date(2024, time.January, 1), datePtr(2024, time.March, 1)),
				period(model.PeriodRetirement, date(2024, time.March, 1), nil),
			},
			want: model.TitleStatusRetired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProjectTitleStatus(GroupHistory(tt.periods), now)
			if got != tt.want {
				t.Fatalf("expected title status %s, got %s", tt.want, got)
			}
		})
	}
}

func TestCheckLedger(t *testing.T) {
	tests := []struct {
		name    string
		periods []model.Period
		wantErr bool
	}{
		{
			name: "clean ledger",
			periods: []model.Period{
				period(model.PeriodEmployment, date(2023, time.January, 1), datePtr(2023, time.June, 1)),
				period(model.PeriodEmployment, date(2024, time.January, 1), nil),
			},
		},
		{
			name: "two open periods of one kind",
			periods: []model.Period{
				period(model.PeriodEmployment, date(2023, time.January, 1), nil),
				period(model.PeriodEmployment, date(2024, time.January, 1), nil),
			},
			wantErr: true,
		},
		{
			name: "end before start",
			periods: []model.Period{
				period(model.PeriodEmployment, date(2024, time.March, 1), datePtr(2024, time.January, 1)),
			},
			wantErr: true,
		},
		{
			name: "overlapping closed periods",
			periods: []model.Period{
				period(model.PeriodSuspension, date(2024, time.January, 1), datePtr(2024, time.March, 1)),
				period(model.PeriodSuspension, date(2024, time.February, 1), datePtr(2024, time.April, 1)),
			},
			wantErr: true,
		},
		{
			name: "adjacent periods do not overlap",
			periods: []model.Period{
				period(model.PeriodEmployment, date(2024, time.January, 1), datePtr(2024, time.March, 1)),
				period(model.PeriodEmployment, date(2024, time.March, 1), nil),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckLedger(GroupHistory(tt.periods))
			if tt.wantErr && !errors.Is(err, ErrLedgerViolation) {
				t.Fatalf("expected ledger violation, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

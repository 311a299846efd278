package stats

import (
	"github.com/nifgashim/trek-api/internal/models"
)

// ProjectedParticipant is one roster row: a participant annotated with
// derived flags from its owning registration.
type ProjectedParticipant struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	AgeRange  string `json:"age_range"`
	IsChild   bool   `json:"is_child"`
	IsPaid    bool   `json:"is_paid"`
	IsGroup   bool   `json:"is_group"`
	GroupName string `json:"group_name"`
	Reference string `json:"reference"`
}

type Projection struct {
	ByDay map[int][]ProjectedParticipant `json:"by_day"`
	// All holds every participant once, deduplicated across days by
	// (email ?? name). First occurrence in input order wins; later
	// appearances of the same key are dropped unreconciled.
	All []ProjectedParticipant `json:"all"`
}

// ProjectByDay fans each registration's participants out into every
// selected day's bucket. A registration listing the same day twice
// still contributes its participants to that day only once. Pure
// in-memory pass, no persistence calls.
func ProjectByDay(regs []models.Registration) Projection {
	proj := Projection{ByDay: map[int][]ProjectedParticipant{}}
	seen := map[string]bool{}

	for _, r := range regs {
		paid := IsPaid(r)

		rows := make([]ProjectedParticipant, 0, len(r.Participants))
		for _, p := range r.Participants {
			rows = append(rows, ProjectedParticipant{
				Name:      p.Name,
				Email:     p.Email,
				Phone:     p.Phone,
				AgeRange:  p.AgeRange,
				IsChild:   IsChild(p.AgeRange),
				IsPaid:    paid,
				IsGroup:   r.IsGroup,
				GroupName: r.GroupName,
				Reference: r.Reference,
			})
		}

		dayDone := map[int]bool{}
		for _, day := range r.SelectedDays {
			if dayDone[day] {
				continue
			}
			dayDone[day] = true
			proj.ByDay[day] = append(proj.ByDay[day], rows...)
		}

		for _, row := range rows {
			key := row.Email
			if key == "" {
				key = row.Name
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			proj.All = append(proj.All, row)
		}
	}

	return proj
}

package models

import "time"

// InterviewRound is a reusable template defining the skills, default panel
// and acceptance threshold for a single stage of the hiring process.
// The (designation, name) pair is unique across rounds.
type InterviewRound struct {
	ID                    uint          `gorm:"primaryKey" json:"id"`
	Name                  string        `gorm:"size:140;not null;uniqueIndex:uniq_round_designation_name" json:"name"`
	DesignationID         *uint         `gorm:"uniqueIndex:uniq_round_designation_name" json:"designation_id"`
	Designation           *Designation  `json:"designation,omitempty"`
	InterviewTypeID       uint          `gorm:"not null;index" json:"interview_type_id"`
	InterviewType         InterviewType `json:"interview_type,omitempty"`
	ExpectedAverageRating float64       `gorm:"not null;default:0" json:"expected_average_rating"`
	Skills                []RoundSkill  `gorm:"constraint:OnDelete:CASCADE" json:"skills"`
	Interviewers          []RoundMember `gorm:"constraint:OnDelete:CASCADE" json:"interviewers"`
	CreatedAt             time.Time     `json:"created_at"`
	UpdatedAt             time.Time     `json:"updated_at"`
}

// RoundSkill is a child row linking a round to one expected skill.
type RoundSkill struct {
	ID               uint  `gorm:"primaryKey" json:"id"`
	InterviewRoundID uint  `gorm:"not null;index" json:"interview_round_id"`
	SkillID          uint  `gorm:"not null" json:"skill_id"`
	Skill            Skill `json:"skill,omitempty"`
}

// RoundMember is a child row naming a default interviewer for the round.
type RoundMember struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	InterviewRoundID uint   `gorm:"not null;index" json:"interview_round_id"`
	Email            string `gorm:"size:255;not null" json:"email"`
	Name             string `gorm:"size:255" json:"name"`
}

// SkillNames flattens the expected skill set for prompt building and display.
func (r InterviewRound) SkillNames() []string {
	names := make([]string, 0, len(r.Skills))
	for _, rs := range r.Skills {
		if rs.Skill.Name != "" {
			names = append(names, rs.Skill.Name)
		}
	}
	return names
}

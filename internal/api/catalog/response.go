package catalog

import (
	"time"

	"catalog-app/internal/domain/catalog"
	"catalog-app/internal/revision"
)

type LabelDTO struct {
	Display string              `json:"display"`
	Sub     string              `json:"sub,omitempty"`
	Name    catalog.NameDisplay `json:"name"`
}

type SnapshotDTO struct {
	Kind     catalog.Kind `json:"kind"`
	ID       int64        `json:"id"`
	Revision int          `json:"revision"`
	ChangeID int64        `json:"change_id"`
	Hidden   bool         `json:"hidden"`
	Locked   bool         `json:"locked"`
	Label    LabelDTO     `json:"label"`
	Data     catalog.Data `json:"data"`
}

type RevisionDTO struct {
	Revision int       `json:"revision"`
	ChangeID int64     `json:"change_id"`
	UserID   int64     `json:"user_id"`
	Username string    `json:"username"`
	Comment  string    `json:"comment"`
	Hidden   bool      `json:"hidden"`
	Locked   bool      `json:"locked"`
	Created  time.Time `json:"created"`
}

type RevisionsDTO struct {
	Kind      catalog.Kind  `json:"kind"`
	ID        int64         `json:"id"`
	Label     LabelDTO      `json:"label"`
	Revisions []RevisionDTO `json:"revisions"`
}

func toLabelDTO(d catalog.Data, lang catalog.Language, pref catalog.NamePref) LabelDTO {
	name := catalog.LabelOf(d, lang)
	return LabelDTO{Display: name.Display(pref), Sub: name.DisplaySub(pref), Name: name}
}

func toSnapshotDTO(s *revision.Snapshot, lang catalog.Language, pref catalog.NamePref) SnapshotDTO {
	flags := s.Data.Flags()
	return SnapshotDTO{
		Kind:     s.Kind,
		ID:       s.ItemID,
		Revision: s.Change.Revision,
		ChangeID: s.Change.ID,
		Hidden:   flags.Hidden,
		Locked:   flags.Locked,
		Label:    toLabelDTO(s.Data, lang, pref),
		Data:     s.Data,
	}
}

func toRevisionDTOs(entries []revision.RevisionEntry) []RevisionDTO {
	out := make([]RevisionDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, RevisionDTO{
			Revision: e.Revision,
			ChangeID: e.ID,
			UserID:   e.UserID,
			Username: e.Username,
			Comment:  e.Comments,
			Hidden:   e.Ihid,
			Locked:   e.Ilock,
			Created:  e.Created,
		})
	}
	return out
}

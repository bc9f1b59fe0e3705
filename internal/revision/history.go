package revision

import (
	"context"
	"encoding/json"

	"catalog-app/internal/domain/catalog"

	"gorm.io/gorm"
)

// Snapshot is an entity as of one change.
type Snapshot struct {
	Kind   catalog.Kind   `json:"kind"`
	ItemID int64          `json:"item_id"`
	Change catalog.Change `json:"change"`
	Data   catalog.Data   `json:"data"`
}

// GetHistoryAt rebuilds an entity from the history tables only. A revision of
// zero or less selects the latest one.
func GetHistoryAt(ctx context.Context, db *gorm.DB, kind catalog.Kind, itemID int64, revision int) (*Snapshot, error) {
	fam, err := familyOf(kind)
	if err != nil {
		return nil, err
	}

	var snap *Snapshot
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ch catalog.Change
		var err error
		if revision > 0 {
			ch, err = changeAt(tx, kind, itemID, revision)
		} else {
			ch, err = latestChange(tx, kind, itemID)
		}
		if err != nil {
			return err
		}
		data, err := fam.loadHistory(tx, ch)
		if err != nil {
			return err
		}
		snap = &Snapshot{Kind: kind, ItemID: itemID, Change: ch, Data: data}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// Current reads an entity from the current and live relation tables, paired
// with its latest change.
func Current(ctx context.Context, db *gorm.DB, kind catalog.Kind, itemID int64) (*Snapshot, error) {
	fam, err := familyOf(kind)
	if err != nil {
		return nil, err
	}

	var snap *Snapshot
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// change first: data committed after it can only land under an older
		// revision key, never the other way round
		ch, err := latestChange(tx, kind, itemID)
		if err != nil {
			return err
		}
		data, err := fam.loadCurrent(tx, itemID)
		if err != nil {
			return err
		}
		snap = &Snapshot{Kind: kind, ItemID: itemID, Change: ch, Data: data}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *Snapshot) UnmarshalJSON(b []byte) error {
	var aux struct {
		Kind   catalog.Kind    `json:"kind"`
		ItemID int64           `json:"item_id"`
		Change catalog.Change  `json:"change"`
		Data   json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	data, err := catalog.DecodeData(aux.Kind, aux.Data)
	if err != nil {
		return err
	}
	*s = Snapshot{Kind: aux.Kind, ItemID: aux.ItemID, Change: aux.Change, Data: data}
	return nil
}

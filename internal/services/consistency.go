package services

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"confeitaria/internal/config"
)

// step is one write of a multi-row operation. undo reverses a committed do
// and may be nil for the last step.
type step struct {
	name string
	do   func(tx *gorm.DB) error
	undo func(db *gorm.DB) error
}

// runSteps executes steps in order and returns the first error.
//
// In atomic mode every step runs inside one database transaction, so a
// failure leaves nothing behind. In compensate mode each step commits on
// its own; when a step fails, the undo of every earlier step runs once, in
// reverse order, with no retry. An undo that fails is logged as an orphan.
func runSteps(db *gorm.DB, mode config.ConsistencyMode, log *zap.SugaredLogger, steps ...step) error {
	if mode != config.ConsistencyCompensate {
		return db.Transaction(func(tx *gorm.DB) error {
			for _, s := range steps {
				if err := s.do(tx); err != nil {
					return err
				}
			}
			return nil
		})
	}

	for i, s := range steps {
		if err := s.do(db); err != nil {
			for j := i - 1; j >= 0; j-- {
				prev := steps[j]
				if prev.undo == nil {
					continue
				}
				if undoErr := prev.undo(db); undoErr != nil {
					log.Errorw("compensation failed, record left orphaned",
						"failed_step", s.name,
						"undo_step", prev.name,
						"error", undoErr,
					)
				}
			}
			return err
		}
	}
	return nil
}

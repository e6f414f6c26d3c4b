package block

import (
	"errors"

	"github.com/TomWrigley-7/touchline/internal/models"
	"gorm.io/gorm"
)

// BlockRepository defines the interface for catalog data operations.
type BlockRepository interface {
	CreateBlock(block *BlockDefinition) error
	GetBlockByID(id uint) (*BlockDefinition, error)
	ListBlocks(coachID uint, clubID *uint, page, limit int, filters map[string]interface{}) ([]BlockDefinition, int64, error)
	UpdateBlock(block *BlockDefinition) error
	DeleteBlock(id uint) error

	// CloneBlock copies the source block, applies the patch on top, and
	// creates the copy as a private block owned by newOwnerID. The source
	// row is never touched.
	CloneBlock(blockID uint, patch Patch, newOwnerID uint) (*BlockDefinition, error)

	WithTransaction(txFunc func(BlockRepository) error) error
}

type blockRepository struct {
	db *gorm.DB
}

// NewBlockRepository creates a new instance of BlockRepository.
func NewBlockRepository(db *gorm.DB) BlockRepository {
	return &blockRepository{db: db}
}

func (r *blockRepository) CreateBlock(block *BlockDefinition) error {
	return r.db.Create(block).Error
}

func (r *blockRepository) GetBlockByID(id uint) (*BlockDefinition, error) {
	var b BlockDefinition
	if err := r.db.Preload("Outcomes").First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *blockRepository) ListBlocks(coachID uint, clubID *uint, page, limit int, filters map[string]interface{}) ([]BlockDefinition, int64, error) {
	var blocks []BlockDefinition
	var total int64

	// Own blocks plus anything shared with the coach.
	query := r.db.Model(&BlockDefinition{}).Preload("Outcomes")
	if clubID != nil {
		query = query.Where(
			"creator_id = ? OR visibility = ? OR (visibility = ? AND club_id = ?)",
			coachID, VisibilityPublic, VisibilityClub, *clubID,
		)
	} else {
		query = query.Where("creator_id = ? OR visibility = ?", coachID, VisibilityPublic)
	}

	if title, ok := filters["title"]; ok {
		query = query.Where("title ILIKE ?", "%"+title.(string)+"%")
	}
	if attributeKey, ok := filters["attribute_key"]; ok {
		query = query.Where(
			"id IN (?)",
			r.db.Model(&BlockOutcome{}).Select("block_definition_id").Where("attribute_key = ?", attributeKey),
		)
	}

	query.Count(&total)
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&blocks).Error; err != nil {
		return nil, 0, err
	}
	return blocks, total, nil
}

func (r *blockRepository) UpdateBlock(block *BlockDefinition) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Outcomes are replaced wholesale, not merged.
		if err := tx.Where("block_definition_id = ?", block.ID).Delete(&BlockOutcome{}).Error; err != nil {
			return err
		}
		for i := range block.Outcomes {
			block.Outcomes[i].ID = 0
			block.Outcomes[i].BlockDefinitionID = block.ID
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(block).Error
	})
}

func (r *blockRepository) DeleteBlock(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("block_definition_id = ?", id).Delete(&BlockOutcome{}).Error; err != nil {
			return err
		}
		return tx.Delete(&BlockDefinition{}, id).Error
	})
}

func (r *blockRepository) CloneBlock(blockID uint, patch Patch, newOwnerID uint) (*BlockDefinition, error) {
	source, err := r.GetBlockByID(blockID)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, gorm.ErrRecordNotFound
	}

	clone := &BlockDefinition{
		Title:          source.Title,
		Description:    source.Description,
		CoachingPoints: append(models.StringSlice(nil), source.CoachingPoints...),
		Duration:       source.Duration,
		BallRollingPct: source.BallRollingPct,
		Diagram:        source.Diagram,
		CreatorID:      newOwnerID,
		Visibility:     VisibilityPrivate,
	}
	for _, o := range source.Outcomes {
		clone.Outcomes = append(clone.Outcomes, BlockOutcome{
			AttributeKey: o.AttributeKey,
			OrderType:    o.OrderType,
			Relevance:    o.Relevance,
		})
	}

	if err := patch.Apply(clone); err != nil {
		return nil, err
	}

	if err := r.db.Create(clone).Error; err != nil {
		return nil, err
	}
	return clone, nil
}

func (r *blockRepository) WithTransaction(txFunc func(BlockRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return txFunc(&blockRepository{db: tx})
	})
}

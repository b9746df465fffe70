package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-cumplebot/internal/config"
	"github.com/tartampluch/go-cumplebot/internal/engine"
)

// VCardSource reads birthday records from a local .vcf file. It is the
// alternate source mode for deployments without a hosted table.
type VCardSource struct {
	Path string
}

// Fetch decodes the vCard stream into records. Malformed cards are skipped
// to maximize data recovery; cards without a BDAY are kept with an empty
// raw date and excluded later by the resolver.
func (s *VCardSource) Fetch(ctx context.Context) ([]engine.PersonRecord, error) {
	if s.Path == "" {
		return nil, errors.New(config.ErrLocalPathEmpty)
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	defer func() { _ = f.Close() }()

	log := slog.With(
		config.LogKeyComponent, config.CompStore,
		config.LogKeyFile, s.Path,
	)

	decoder := vcard.NewDecoder(f)
	var records []engine.PersonRecord

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Warn(config.MsgVCardSkipped, config.LogKeyError, err)
			continue
		}

		name := ""
		if fn := card.Get(config.VCardFN); fn != nil {
			name = fn.Value
		} else if n := card.Get(config.VCardN); n != nil {
			name = n.Value
		}

		rawDate := ""
		if bday := card.Get(config.VCardBDAY); bday != nil {
			rawDate = bday.Value
		}

		records = append(records, engine.PersonRecord{
			ID:      name,
			Name:    name,
			RawDate: rawDate,
		})
	}

	log.Info(config.MsgCardsLoaded, config.LogKeyCount, len(records))
	return records, nil
}

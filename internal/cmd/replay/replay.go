// Package replay parses replay command flags and verifies recorded journals.
package replay

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	apperrors "github.com/louisbranch/emergent.world/internal/errors"
	entrypoint "github.com/louisbranch/emergent.world/internal/platform/cmd"
	"github.com/louisbranch/emergent.world/internal/replay"
	"github.com/louisbranch/emergent.world/internal/storage/cursor"
	"github.com/louisbranch/emergent.world/internal/storage/sqlite"
)

// Config holds replay command configuration.
type Config struct {
	JournalPath string `env:"EMERGENT_WORLD_REPLAY_JOURNAL" envDefault:"simd-journal.db"`
	AgainstPath string `env:"EMERGENT_WORLD_REPLAY_AGAINST"`
	Page        int    `env:"EMERGENT_WORLD_REPLAY_PAGE" envDefault:"50"`
	Token       string `env:"EMERGENT_WORLD_REPLAY_TOKEN"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.JournalPath, "journal", cfg.JournalPath, "The journal to inspect")
	fs.StringVar(&cfg.AgainstPath, "against", cfg.AgainstPath, "A second journal to verify against")
	fs.IntVar(&cfg.Page, "page", cfg.Page, "Records listed per page")
	fs.StringVar(&cfg.Token, "token", cfg.Token, "Resume inspection from an opaque page token")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run inspects a journal, or verifies two journals against each other when a
// second path is given.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceReplay, func(ctx context.Context) error {
		return run(ctx, cfg)
	})
}

func run(ctx context.Context, cfg Config) error {
	journal, err := sqlite.Open(cfg.JournalPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer journal.Close()

	if cfg.AgainstPath == "" {
		return inspect(ctx, journal, cfg.Page, cfg.Token)
	}

	against, err := sqlite.Open(cfg.AgainstPath)
	if err != nil {
		return fmt.Errorf("open comparison journal: %w", err)
	}
	defer against.Close()

	if err := replay.Verify(ctx, journal, against); err != nil {
		var appErr *apperrors.Error
		if errors.As(err, &appErr) && appErr.Code == apperrors.CodeReplayDiverged {
			log.Printf("divergence at seq %s in field %s", appErr.Metadata["seq"], appErr.Metadata["field"])
		}
		return fmt.Errorf("verify journals: %w", err)
	}
	log.Printf("journals match record for record")
	return nil
}

// journalIdentity ties a page token to one recording.
func journalIdentity(h replay.Header) string {
	return fmt.Sprintf("v%d/%d", h.Version, h.Seed)
}

// inspect validates the header and hash chain of a single journal and lists
// its records page by page, printing a resume token after each page.
func inspect(ctx context.Context, journal *sqlite.Journal, page int, token string) error {
	header, err := journal.Header(ctx)
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	if err := header.Validate(); err != nil {
		return fmt.Errorf("validate header: %w", err)
	}
	log.Printf("recording v%d seed %d domains %v", header.Version, header.Seed, header.Domains)

	identity := journalIdentity(header)
	var from uint64
	if token != "" {
		cur, err := cursor.Decode(token)
		if err != nil {
			return fmt.Errorf("decode token: %w", err)
		}
		if cur.Journal != identity {
			return fmt.Errorf("token belongs to recording %q, not %q", cur.Journal, identity)
		}
		from = cur.Seq
	}

	if page <= 0 {
		page = 50
	}
	var total int
	for {
		records, err := journal.Read(ctx, from, page)
		if err != nil {
			return fmt.Errorf("read records: %w", err)
		}
		if len(records) == 0 {
			break
		}
		for _, rec := range records {
			if err := replay.CheckHash(rec); err != nil {
				return fmt.Errorf("check record %d: %w", rec.Seq, err)
			}
			log.Printf("%6d tick %6d %s/%s %s", rec.Seq, rec.Tick, rec.Domain, rec.Kind, rec.Payload)
		}
		total += len(records)
		from = records[len(records)-1].Seq

		next, err := cursor.Encode(cursor.Cursor{Seq: from, Journal: identity})
		if err != nil {
			return fmt.Errorf("encode token: %w", err)
		}
		log.Printf("page token %s", next)
	}
	log.Printf("%d records verified", total)
	return nil
}

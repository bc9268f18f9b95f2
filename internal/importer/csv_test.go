package importer_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"talenthub-backend/internal/domain"
	"talenthub-backend/internal/importer"

	"github.com/stretchr/testify/assert"
)

const header = "Client Name,Position Name,Min Exp,Max Exp,Location,Tech Stack,Domain,Number of positions"

func TestParse(t *testing.T) {
	t.Run("Quoted fields keep their commas", func(t *testing.T) {
		raw := header + "\n" +
			`Acme,"Backend Engineer",2,5,Remote,"Go, Python",FinTech,3`

		drafts, err := importer.Parse(raw)
		assert.NoError(t, err)
		assert.Len(t, drafts, 1)

		job := drafts[0]
		assert.Equal(t, "Acme", job.ClientName)
		assert.Equal(t, "Backend Engineer", job.PositionName)
		assert.Equal(t, 2, job.ExpMin)
		if assert.NotNil(t, job.ExpMax) {
			assert.Equal(t, 5, *job.ExpMax)
		}
		assert.Equal(t, "Remote", job.Location)
		assert.Equal(t, []string{"Go", "Python"}, job.TechStack)
		assert.Equal(t, "FinTech", job.Domain)
		assert.Equal(t, 3, job.NumberOfPositions)
		assert.Equal(t, domain.JobStatusActive, job.Status)
		assert.EqualValues(t, 0, job.TotalApplications)
	})

	t.Run("Missing numerics fall back to defaults", func(t *testing.T) {
		raw := header + "\n" +
			"Acme,Backend Engineer,,,Remote,Go,FinTech,"

		drafts, err := importer.Parse(raw)
		assert.NoError(t, err)
		assert.Len(t, drafts, 1)

		job := drafts[0]
		assert.Equal(t, 0, job.ExpMin)
		assert.Nil(t, job.ExpMax)
		assert.Equal(t, 1, job.NumberOfPositions)
	})

	t.Run("Blank rows are skipped", func(t *testing.T) {
		raw := header + "\n\n" +
			"Acme,Backend Engineer,1,,Remote,Go,FinTech,1\n" +
			"   \n" +
			"Globex,Data Engineer,3,6,Jakarta,Python,Logistics,2\n\n"

		drafts, err := importer.Parse(raw)
		assert.NoError(t, err)
		assert.Len(t, drafts, 2)
		assert.Equal(t, "Globex", drafts[1].ClientName)
	})

	t.Run("CRLF line endings are accepted", func(t *testing.T) {
		raw := strings.ReplaceAll(header+"\nAcme,Backend Engineer,1,,Remote,Go,FinTech,1\n", "\n", "\r\n")

		drafts, err := importer.Parse(raw)
		assert.NoError(t, err)
		assert.Len(t, drafts, 1)
		assert.Equal(t, "Acme", drafts[0].ClientName)
	})

	t.Run("Short rows pad instead of panicking", func(t *testing.T) {
		raw := header + "\nAcme,Backend Engineer"

		drafts, err := importer.Parse(raw)
		assert.NoError(t, err)
		assert.Len(t, drafts, 1)
		assert.Equal(t, "", drafts[0].Location)
		assert.Empty(t, drafts[0].TechStack)
		assert.Equal(t, 1, drafts[0].NumberOfPositions)
	})

	t.Run("Header mismatch is a FormatError before any draft", func(t *testing.T) {
		raw := "Client,Position\nAcme,Backend Engineer"

		drafts, err := importer.Parse(raw)
		assert.Nil(t, drafts)

		var formatErr *importer.FormatError
		if assert.ErrorAs(t, err, &formatErr) {
			assert.Equal(t, []string{"Client", "Position"}, formatErr.Got)
		}
	})

	t.Run("Case or order drift in headers is rejected", func(t *testing.T) {
		raw := strings.ToLower(header) + "\nAcme,Backend Engineer,1,,Remote,Go,FinTech,1"

		_, err := importer.Parse(raw)
		var formatErr *importer.FormatError
		assert.ErrorAs(t, err, &formatErr)
	})

	t.Run("Header only yields zero drafts", func(t *testing.T) {
		drafts, err := importer.Parse(header + "\n")
		assert.NoError(t, err)
		assert.Empty(t, drafts)
	})
}

func TestRunner(t *testing.T) {
	drafts := []domain.Job{
		{ClientName: "Acme"},
		{ClientName: "Globex"},
		{ClientName: "Initech"},
	}

	t.Run("All drafts persist with progress after each", func(t *testing.T) {
		var created []string
		var progress []importer.Progress
		runner := &importer.Runner{
			Create: func(ctx context.Context, job *domain.Job) error {
				created = append(created, job.ClientName)
				return nil
			},
			OnProgress: func(p importer.Progress) {
				progress = append(progress, p)
			},
		}

		n, err := runner.Run(context.Background(), drafts)
		assert.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.Equal(t, []string{"Acme", "Globex", "Initech"}, created)
		assert.Equal(t, []importer.Progress{
			{Processed: 1, Total: 3},
			{Processed: 2, Total: 3},
			{Processed: 3, Total: 3},
		}, progress)
	})

	t.Run("First failure halts with earlier rows committed", func(t *testing.T) {
		boom := errors.New("insert failed")
		var created []string
		runner := &importer.Runner{
			Create: func(ctx context.Context, job *domain.Job) error {
				if job.ClientName == "Globex" {
					return boom
				}
				created = append(created, job.ClientName)
				return nil
			},
		}

		n, err := runner.Run(context.Background(), drafts)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, n)
		assert.Equal(t, []string{"Acme"}, created)
	})

	t.Run("Cancelled context stops before the next persist", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		runner := &importer.Runner{
			Create: func(ctx context.Context, job *domain.Job) error {
				t.Fatal("Create must not run after cancellation")
				return nil
			},
		}

		n, err := runner.Run(ctx, drafts)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, n)
	})
}

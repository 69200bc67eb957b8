package sqlite_test

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"groq-chatbot/internal/chat/repository"
	"groq-chatbot/internal/chat/repository/sqlite"
	"groq-chatbot/pkg/log"
)

var _ = Describe("TranscriptRepository", func() {
	var (
		repo repository.TranscriptRepository
		ctx  context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		repo, err = sqlite.New(":memory:", log.NewNop())
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if repo != nil {
			repo.Close()
		}
	})

	Describe("New", func() {
		It("creates the archive file on disk", func() {
			dbPath := filepath.Join(GinkgoT().TempDir(), "transcripts.db")

			r, err := sqlite.New(dbPath, log.NewNop())
			Expect(err).NotTo(HaveOccurred())
			defer r.Close()

			_, err = os.Stat(dbPath)
			Expect(err).NotTo(HaveOccurred())
		})

		It("reopens an existing archive", func() {
			dbPath := filepath.Join(GinkgoT().TempDir(), "transcripts.db")

			first, err := sqlite.New(dbPath, log.NewNop())
			Expect(err).NotTo(HaveOccurred())
			_, err = first.SaveTranscript(ctx, repository.SaveTranscriptOptions{SessionID: "s", Kind: repository.KindChat, Status: repository.StatusAppended})
			Expect(err).NotTo(HaveOccurred())
			Expect(first.Close()).To(Succeed())

			second, err := sqlite.New(dbPath, log.NewNop())
			Expect(err).NotTo(HaveOccurred())
			defer second.Close()

			list, err := second.ListTranscripts(ctx, repository.ListTranscriptsOptions{SessionID: "s"})
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
		})
	})

	Describe("SaveTranscript and ListTranscripts", func() {
		It("stores a comparison with both responses", func() {
			saved, err := repo.SaveTranscript(ctx, repository.SaveTranscriptOptions{
				SessionID:   "session-1",
				Kind:        repository.KindCompare,
				Status:      repository.StatusAppended,
				Question:    "hi",
				Temperature: 0.7,
				Model1:      "llama-3.1-8b-instant",
				Response1:   "Hello",
				Model2:      "llama-3.3-70b-versatile",
				Response2:   "World",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(saved.ID).To(HaveLen(26))
			Expect(saved.CreatedAt.IsZero()).To(BeFalse())

			list, err := repo.ListTranscripts(ctx, repository.ListTranscriptsOptions{SessionID: "session-1"})
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
			Expect(list[0].ID).To(Equal(saved.ID))
			Expect(list[0].Response1).To(Equal("Hello"))
			Expect(list[0].Response2).To(Equal("World"))
			Expect(list[0].Temperature).To(BeNumerically("~", 0.7))
		})

		It("keeps the surviving response of a discarded comparison", func() {
			_, err := repo.SaveTranscript(ctx, repository.SaveTranscriptOptions{
				SessionID: "session-1",
				Kind:      repository.KindCompare,
				Status:    repository.StatusDiscarded,
				Model1:    "a",
				Error1:    "rate limited",
				Model2:    "b",
				Response2: "World",
			})
			Expect(err).NotTo(HaveOccurred())

			list, err := repo.ListTranscripts(ctx, repository.ListTranscriptsOptions{Status: repository.StatusDiscarded})
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
			Expect(list[0].Error1).To(Equal("rate limited"))
			Expect(list[0].Response2).To(Equal("World"))
		})

		It("filters by session and returns oldest first", func() {
			for _, q := range []string{"first", "second", "third"} {
				_, err := repo.SaveTranscript(ctx, repository.SaveTranscriptOptions{
					SessionID: "ordered", Kind: repository.KindChat, Status: repository.StatusAppended, Question: q,
				})
				Expect(err).NotTo(HaveOccurred())
			}
			_, err := repo.SaveTranscript(ctx, repository.SaveTranscriptOptions{SessionID: "other", Kind: repository.KindChat})
			Expect(err).NotTo(HaveOccurred())

			list, err := repo.ListTranscripts(ctx, repository.ListTranscriptsOptions{SessionID: "ordered"})
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(3))
			Expect(list[0].Question).To(Equal("first"))
			Expect(list[2].Question).To(Equal("third"))

			limited, err := repo.ListTranscripts(ctx, repository.ListTranscriptsOptions{SessionID: "ordered", Limit: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(limited).To(HaveLen(2))
		})

		It("returns nothing for an unknown session", func() {
			list, err := repo.ListTranscripts(ctx, repository.ListTranscriptsOptions{SessionID: "nope"})
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(BeEmpty())
		})
	})
})

package historycmder

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"groq-chatbot/internal/chat/repository"
	"groq-chatbot/internal/chat/repository/sqlite"
	"groq-chatbot/pkg/log"
)

func TestHistoryCmd(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "History Command Suite")
}

var _ = Describe("History Command", func() {
	var (
		ctx    context.Context
		tmpDir string
		dbPath string
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		tmpDir, err = os.MkdirTemp("", "chatctl-history-test-*")
		Expect(err).NotTo(HaveOccurred())
		dbPath = filepath.Join(tmpDir, "transcripts.db")

		repo, err := sqlite.New(dbPath, log.NewNop())
		Expect(err).NotTo(HaveOccurred())
		defer repo.Close()

		_, err = repo.SaveTranscript(ctx, repository.SaveTranscriptOptions{
			SessionID: "s1",
			Kind:      repository.KindCompare,
			Status:    repository.StatusAppended,
			Question:  "hi",
			Model1:    "m1",
			Response1: "Hello",
			Model2:    "m2",
			Response2: "World",
		})
		Expect(err).NotTo(HaveOccurred())

		_, err = repo.SaveTranscript(ctx, repository.SaveTranscriptOptions{
			SessionID: "s1",
			Kind:      repository.KindCompare,
			Status:    repository.StatusDiscarded,
			Question:  "again",
			Model1:    "m1",
			Response1: "Partial",
			Model2:    "m2",
			Error2:    "connection failed",
		})
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	run := func(args ...string) (string, error) {
		var out bytes.Buffer
		cmd := NewHistoryCmd()
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		cmd.SetArgs(args)
		err := cmd.ExecuteContext(ctx)
		return out.String(), err
	}

	It("prints every interaction in order", func() {
		out, err := run("s1", "--sqlite", dbPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("[Model 1: m1]: Hello\n\n[Model 2: m2]: World"))
		Expect(out).To(ContainSubstring("Model 2 (m2) failed: connection failed"))
		Expect(out).To(ContainSubstring("2 interactions"))
	})

	It("filters by status", func() {
		out, err := run("s1", "--sqlite", dbPath, "--status", "discarded")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("User: again"))
		Expect(out).NotTo(ContainSubstring("User: hi\n"))
		Expect(out).To(ContainSubstring("1 interactions"))
	})

	It("reports an unknown session", func() {
		out, err := run("nope", "--sqlite", dbPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("No transcripts for session nope"))
	})

	It("rejects a bad status", func() {
		_, err := run("s1", "--sqlite", dbPath, "--status", "pending")
		Expect(err).To(HaveOccurred())
	})

	It("fails on a missing database", func() {
		_, err := run("s1", "--sqlite", filepath.Join(tmpDir, "missing.db"))
		Expect(err).To(MatchError(ContainSubstring("does not exist")))
	})
})

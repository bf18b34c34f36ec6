package dotdir_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/dify/pkg/dotdir"
)

var _ = Describe("dotdir.Manager conversations", func() {
	var tmpDir string
	var m *dotdir.Manager

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "dotdir-test-*")
		Expect(err).NotTo(HaveOccurred())
		m = dotdir.NewManager()
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	Describe("LoadConversations", func() {
		It("returns an empty state when no file exists", func() {
			state, err := m.LoadConversations(tmpDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(state.Conversations).To(BeEmpty())
		})

		It("loads a valid state file", func() {
			data := `{"conversations":{"support-bot":"c-1","faq":"c-2"}}`
			Expect(os.WriteFile(filepath.Join(tmpDir, "conversations.json"), []byte(data), 0o600)).To(Succeed())

			state, err := m.LoadConversations(tmpDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(state.Conversations).To(Equal(map[string]string{"support-bot": "c-1", "faq": "c-2"}))
		})

		It("tolerates a file without the conversations field", func() {
			Expect(os.WriteFile(filepath.Join(tmpDir, "conversations.json"), []byte(`{}`), 0o600)).To(Succeed())

			state, err := m.LoadConversations(tmpDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(state.Conversations).NotTo(BeNil())
		})

		It("returns error for invalid JSON", func() {
			Expect(os.WriteFile(filepath.Join(tmpDir, "conversations.json"), []byte("not json"), 0o600)).To(Succeed())

			state, err := m.LoadConversations(tmpDir)
			Expect(err).To(HaveOccurred())
			Expect(state).To(BeNil())
		})
	})

	Describe("SaveConversation", func() {
		It("persists and reads back per app", func() {
			Expect(m.SaveConversation("support-bot", "c-1", tmpDir)).To(Succeed())
			Expect(m.SaveConversation("faq", "c-9", tmpDir)).To(Succeed())

			id, err := m.Conversation("support-bot", tmpDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(id).To(Equal("c-1"))

			id, err = m.Conversation("faq", tmpDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(id).To(Equal("c-9"))
		})

		It("overwrites the previous id for the same app", func() {
			Expect(m.SaveConversation("support-bot", "first", tmpDir)).To(Succeed())
			Expect(m.SaveConversation("support-bot", "second", tmpDir)).To(Succeed())

			id, err := m.Conversation("support-bot", tmpDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(id).To(Equal("second"))
		})

		It("removes the entry for an empty id", func() {
			Expect(m.SaveConversation("support-bot", "c-1", tmpDir)).To(Succeed())
			Expect(m.SaveConversation("support-bot", "", tmpDir)).To(Succeed())

			state, err := m.LoadConversations(tmpDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(state.Conversations).NotTo(HaveKey("support-bot"))
		})

		It("rejects an empty app name", func() {
			Expect(m.SaveConversation("", "c-1", tmpDir)).To(HaveOccurred())
		})

		It("writes the file owner-readable only", func() {
			Expect(m.SaveConversation("support-bot", "c-1", tmpDir)).To(Succeed())

			info, err := os.Stat(filepath.Join(tmpDir, "conversations.json"))
			Expect(err).NotTo(HaveOccurred())
			Expect(info.Mode().Perm()).To(Equal(os.FileMode(0o600)))
		})
	})

	Describe("ClearConversations", func() {
		It("removes the state file", func() {
			Expect(m.SaveConversation("support-bot", "c-1", tmpDir)).To(Succeed())
			Expect(m.ClearConversations(tmpDir)).To(Succeed())

			id, err := m.Conversation("support-bot", tmpDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(id).To(BeEmpty())
		})

		It("succeeds when no file exists", func() {
			Expect(m.ClearConversations(tmpDir)).To(Succeed())
		})
	})
})

package dotdir_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/dify/pkg/dotdir"
)

var _ = Describe("UserID", func() {
	var (
		manager *dotdir.Manager
		dir     string
	)

	BeforeEach(func() {
		manager = dotdir.NewManager()
		dir = GinkgoT().TempDir()
	})

	It("generates and persists an id on first use", func() {
		id, err := manager.UserID(dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(id).To(HavePrefix("dify-cli-"))

		data, err := os.ReadFile(filepath.Join(dir, "user_id"))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal(id + "\n"))
	})

	It("returns the same id on later calls", func() {
		first, err := manager.UserID(dir)
		Expect(err).NotTo(HaveOccurred())

		second, err := manager.UserID(dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(second).To(Equal(first))
	})

	It("keeps an id written by hand", func() {
		Expect(os.WriteFile(filepath.Join(dir, "user_id"), []byte("  alice \n"), 0o600)).To(Succeed())

		id, err := manager.UserID(dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(id).To(Equal("alice"))
	})

	It("replaces an empty file", func() {
		Expect(os.WriteFile(filepath.Join(dir, "user_id"), []byte("\n"), 0o600)).To(Succeed())

		id, err := manager.UserID(dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(id).To(HavePrefix("dify-cli-"))
	})
})

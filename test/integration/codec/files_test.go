// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pitchpolt Contributors

//go:build integration

package codec_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/user"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/pitchpolt/pitchpolt/internal/codec"
	"github.com/pitchpolt/pitchpolt/internal/privilege"
	"github.com/pitchpolt/pitchpolt/internal/record"
)

func catalog(n int) []record.ItemDetails {
	arr := make([]record.ItemDetails, n)
	for i := range arr {
		arr[i] = record.ItemDetails{
			Name: record.MustBuffer("item-" + string(rune('a'+i%26))),
			Desc: record.MustBuffer("a plain item"),
		}
	}
	return arr
}

func saveCatalog(path string, arr []record.ItemDetails) {
	f, err := os.Create(path)
	Expect(err).NotTo(HaveOccurred())
	defer f.Close()
	Expect(codec.SaveItemDetails(f, arr)).To(Succeed())
}

var _ = Describe("Catalog files", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("round-trips through a real file", func() {
		path := filepath.Join(dir, "catalog.bin")
		want := catalog(40)
		saveCatalog(path, want)

		info, err := os.Stat(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(info.Size()).To(Equal(int64(8 + 40*record.ItemDetailsSize)))

		f, err := os.Open(path)
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()

		got, err := codec.LoadItemDetails(f)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(want))
		Expect(codec.Fingerprint(got)).To(Equal(codec.Fingerprint(want)))
	})

	It("rejects a file truncated mid-array", func() {
		path := filepath.Join(dir, "catalog.bin")
		saveCatalog(path, catalog(3))
		Expect(os.Truncate(path, 8+2*record.ItemDetailsSize+10)).To(Succeed())

		f, err := os.Open(path)
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()

		got, err := codec.LoadItemDetails(f)
		Expect(err).To(HaveOccurred())
		Expect(got).To(BeNil())
	})
})

var _ = Describe("Character files", func() {
	It("round-trips through a real file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "characters.bin")
		want := []record.Character{
			{CharacterID: 1, SocialClass: record.Gentry, Profession: record.MustBuffer("falconer"), Name: record.MustBuffer("Sir Wat"), InventorySize: 1},
			{CharacterID: 2, SocialClass: record.Labourer, Profession: record.MustBuffer("thatcher"), Name: record.MustBuffer("Meg")},
		}
		want[0].Inventory[0] = record.ItemCarried{ItemID: 4, Quantity: 2}

		f, err := os.Create(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(codec.SaveCharacters(f, want)).To(Succeed())
		Expect(f.Close()).To(Succeed())

		f, err = os.Open(path)
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()

		got, err := codec.LoadCharacters(f)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(want))
	})
})

var _ = Describe("SecureLoad with the process identity", func() {
	It("loads as the current user and drops back to it", func() {
		me, err := user.Current()
		Expect(err).NotTo(HaveOccurred())

		path := filepath.Join(GinkgoT().TempDir(), "catalog.bin")
		saveCatalog(path, catalog(5))

		loader := &privilege.Loader{
			Account: me.Username,
			Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		}

		var got int
		err = loader.SecureLoad(context.Background(), path, privilege.PlayerFunc(
			func(_ context.Context, arr []record.ItemDetails) error {
				got = len(arr)
				return nil
			},
		))
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(5))
		Expect(os.Geteuid()).To(Equal(os.Getuid()))
	})

	It("reports a missing catalog as a data failure", func() {
		me, err := user.Current()
		Expect(err).NotTo(HaveOccurred())

		loader := &privilege.Loader{
			Account: me.Username,
			Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		}
		err = loader.SecureLoad(context.Background(), filepath.Join(GinkgoT().TempDir(), "none.bin"),
			privilege.PlayerFunc(func(context.Context, []record.ItemDetails) error {
				Fail("game dispatched without a catalog")
				return nil
			}))
		Expect(err).To(MatchError(privilege.ErrData))
		Expect(privilege.ExitCode(err)).To(Equal(privilege.ExitData))
	})
})

package htmllog_test

import (
	"bytes"
	"errors"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/afero"

	"github.com/angeloszaimis/htmllog/pkg/htmllog"
)

var entryLine = regexp.MustCompile(`<div class="log log-\w+" data-type="(\w+)">\(\w+\) \([^)]*\): (.*)</div>`)

var _ = Describe("Logger", func() {
	var (
		fs    afero.Fs
		clock *fakeClock
		l     *htmllog.Logger
	)

	readReport := func() string {
		data, err := afero.ReadFile(fs, l.Path())
		Expect(err).NotTo(HaveOccurred())
		return string(data)
	}

	BeforeEach(func() {
		fs = afero.NewMemMapFs()
		Expect(fs.MkdirAll("/tmp/logs", 0o755)).To(Succeed())
		clock = &fakeClock{t: time.Date(2024, time.March, 5, 9, 7, 3, 0, time.Local)}

		var err error
		l, err = htmllog.New("Import", "desc", "/tmp/logs",
			htmllog.WithFs(fs),
			htmllog.WithClock(clock.Now))
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("New", func() {
		It("does not write anything", func() {
			exists, err := afero.Exists(fs, l.Path())
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})

		It("starts with no sections and no end", func() {
			snap := l.Snapshot()
			Expect(snap.Title).To(Equal("Import"))
			Expect(snap.Description).To(Equal("desc"))
			Expect(snap.Start).To(Equal(clock.Now()))
			Expect(snap.End.IsZero()).To(BeTrue())
			Expect(snap.Sections).To(BeEmpty())
		})

		It("assigns a run id", func() {
			Expect(l.RunID()).NotTo(BeEmpty())
			Expect(l.Snapshot().RunID).To(Equal(l.RunID()))
			Expect(l.LogsPath()).To(Equal("/tmp/logs"))
		})

		DescribeTable("rejects invalid identity",
			func(title, logsPath string) {
				_, err := htmllog.New(title, "desc", logsPath, htmllog.WithFs(fs))
				Expect(err).To(HaveOccurred())
			},
			Entry("empty title", "", "/tmp/logs"),
			Entry("title with a path separator", "a/b", "/tmp/logs"),
			Entry("title with spaces", "my import", "/tmp/logs"),
			Entry("empty logs path", "Import", ""),
		)
	})

	Describe("Path", func() {
		It("is derived from the start time", func() {
			Expect(l.Path()).To(Equal(filepath.Join("/tmp/logs", "2024", "03", "05", "Import_20240305_090703.html")))
		})

		It("stays the same across saves on later days", func() {
			Expect(l.Save()).To(Succeed())
			first := l.Path()

			clock.Advance(26 * time.Hour)
			Expect(l.Save()).To(Succeed())
			Expect(l.Path()).To(Equal(first))

			entries, err := afero.ReadDir(fs, "/tmp/logs/2024/03")
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(1))
		})
	})

	Describe("Save", func() {
		It("advances end on every call", func() {
			Expect(l.Save()).To(Succeed())
			first := l.Snapshot().End

			clock.Advance(time.Second)
			Expect(l.Save()).To(Succeed())
			Expect(l.Snapshot().End).To(Equal(first.Add(time.Second)))
		})

		It("writes the summary", func() {
			Expect(l.Save()).To(Succeed())
			out := readReport()
			Expect(out).To(ContainSubstring("<title>Import - 05/03/2024 9:7:3</title>"))
			Expect(out).To(ContainSubstring("<dd>desc</dd>"))
		})

		It("surfaces storage failures", func() {
			ro, err := htmllog.New("Import", "desc", "/tmp/logs",
				htmllog.WithFs(afero.NewReadOnlyFs(fs)),
				htmllog.WithClock(clock.Now))
			Expect(err).NotTo(HaveOccurred())

			Expect(ro.Save()).To(HaveOccurred())
			Expect(ro.CreateSection("Phase 1", "P1")).To(HaveOccurred())
		})
	})

	Describe("CreateSection", func() {
		It("persists the new section", func() {
			Expect(l.CreateSection("Phase 1", "P1")).To(Succeed())

			out := readReport()
			Expect(out).To(ContainSubstring(`<a href="#P1">Phase 1</a>`))
			Expect(out).To(ContainSubstring(`id="P1"`))
		})

		It("opens the section with end equal to start", func() {
			Expect(l.CreateSection("Phase 1", "P1")).To(Succeed())
			clock.Advance(time.Minute)
			Expect(l.Save()).To(Succeed())

			sec, ok := l.Snapshot().Section("P1")
			Expect(ok).To(BeTrue())
			Expect(sec.End).To(Equal(sec.Start))
			Expect(sec.Closed).To(BeFalse())
			Expect(sec.Logs).To(BeEmpty())
		})

		It("keeps sections in creation order", func() {
			for _, key := range []string{"C", "A", "B"} {
				Expect(l.CreateSection("Section "+key, key)).To(Succeed())
			}

			var keys []string
			for _, sec := range l.Snapshot().Sections {
				keys = append(keys, sec.Key)
			}
			Expect(keys).To(Equal([]string{"C", "A", "B"}))

			out := readReport()
			Expect(strings.Index(out, `id="C"`)).To(BeNumerically("<", strings.Index(out, `id="A"`)))
			Expect(strings.Index(out, `id="A"`)).To(BeNumerically("<", strings.Index(out, `id="B"`)))
		})

		It("resets an existing key in place", func() {
			Expect(l.CreateSection("First", "P1")).To(Succeed())
			Expect(l.CreateSection("Second", "P2")).To(Succeed())
			Expect(l.Info("P1", "lost")).To(Succeed())
			Expect(l.CloseSection("P1")).To(Succeed())

			clock.Advance(time.Second)
			Expect(l.CreateSection("First again", "P1")).To(Succeed())

			snap := l.Snapshot()
			Expect(snap.Sections).To(HaveLen(2))
			Expect(snap.Sections[0].Key).To(Equal("P1"))
			Expect(snap.Sections[0].Name).To(Equal("First again"))
			Expect(snap.Sections[0].Logs).To(BeEmpty())
			Expect(snap.Sections[0].Closed).To(BeFalse())
			Expect(snap.Sections[0].Start).To(Equal(clock.Now()))
			Expect(readReport()).NotTo(ContainSubstring("lost"))
		})
	})

	Describe("CloseSection", func() {
		It("records elapsed milliseconds", func() {
			Expect(l.CreateSection("Phase 1", "P1")).To(Succeed())
			clock.Advance(1500 * time.Millisecond)
			Expect(l.CloseSection("P1")).To(Succeed())

			sec, _ := l.Snapshot().Section("P1")
			Expect(sec.Closed).To(BeTrue())
			Expect(sec.End).To(Equal(clock.Now()))
			Expect(sec.Elapsed).To(Equal(1500 * time.Millisecond))
			Expect(readReport()).To(ContainSubstring("Elapsed: 1500 ms"))
		})

		It("records zero elapsed when closed immediately", func() {
			Expect(l.CreateSection("Phase 1", "P1")).To(Succeed())
			Expect(l.CloseSection("P1")).To(Succeed())

			sec, _ := l.Snapshot().Section("P1")
			Expect(sec.Elapsed).To(BeNumerically(">=", 0))
			Expect(readReport()).To(ContainSubstring("Elapsed: 0 ms"))
		})

		It("fails for an unknown section without writing", func() {
			err := l.CloseSection("missing")
			Expect(errors.Is(err, htmllog.ErrSectionNotFound)).To(BeTrue())

			exists, _ := afero.Exists(fs, l.Path())
			Expect(exists).To(BeFalse())
		})
	})

	Describe("entries", func() {
		BeforeEach(func() {
			Expect(l.CreateSection("Phase 1", "P1")).To(Succeed())
		})

		It("appends typed entries in order", func() {
			Expect(l.Info("P1", "one")).To(Succeed())
			Expect(l.Error("P1", "two")).To(Succeed())
			Expect(l.Debug("P1", "three")).To(Succeed())

			sec, _ := l.Snapshot().Section("P1")
			Expect(sec.Logs).To(HaveLen(3))
			Expect(sec.Logs[0].Type).To(Equal(htmllog.TypeInfo))
			Expect(sec.Logs[1].Type).To(Equal(htmllog.TypeError))
			Expect(sec.Logs[2].Type).To(Equal(htmllog.TypeDebug))

			matches := entryLine.FindAllStringSubmatch(readReport(), -1)
			Expect(matches).To(HaveLen(3))
			Expect(matches[0][1:]).To(Equal([]string{"INFO", "one"}))
			Expect(matches[1][1:]).To(Equal([]string{"ERROR", "two"}))
			Expect(matches[2][1:]).To(Equal([]string{"DEBUG", "three"}))
		})

		It("stamps entries with the formatted call time", func() {
			clock.Advance(2*time.Hour + 3*time.Second)
			Expect(l.Info("P1", "later")).To(Succeed())

			sec, _ := l.Snapshot().Section("P1")
			Expect(sec.Logs[0].DateTime).To(Equal("05/03/2024 11:7:6"))
			Expect(readReport()).To(ContainSubstring("(INFO) (05/03/2024 11:7:6): later"))
		})

		It("writes each entry into its own section block", func() {
			Expect(l.CreateSection("Phase 2", "P2")).To(Succeed())
			Expect(l.Info("P2", "second phase")).To(Succeed())
			Expect(l.Info("P1", "first phase")).To(Succeed())

			out := readReport()
			p2 := strings.Index(out, `id="P2"`)
			Expect(strings.Index(out, "first phase")).To(BeNumerically("<", p2))
			Expect(strings.Index(out, "second phase")).To(BeNumerically(">", p2))
		})

		It("fails for an unknown section and leaves the report untouched", func() {
			Expect(l.Info("P1", "kept")).To(Succeed())
			before := readReport()

			clock.Advance(time.Minute)
			for _, add := range []func(string, string) error{l.Info, l.Error, l.Debug} {
				err := add("nope", "dropped")
				Expect(err).To(MatchError(htmllog.ErrSectionNotFound))
				Expect(err.Error()).To(ContainSubstring(`"nope"`))
			}

			Expect(readReport()).To(Equal(before))
			Expect(l.Snapshot().Sections).To(HaveLen(1))
		})
	})

	Describe("exceptions", func() {
		It("creates the EXCEPTIONS section on first use", func() {
			Expect(l.ErrorException("boom")).To(Succeed())

			sec, ok := l.Snapshot().Section(htmllog.ExceptionsKey)
			Expect(ok).To(BeTrue())
			Expect(sec.Name).To(Equal(htmllog.ExceptionsName))
			Expect(sec.Closed).To(BeTrue())
			Expect(sec.Logs).To(ConsistOf(HaveField("Type", htmllog.TypeError)))
			Expect(readReport()).To(ContainSubstring(`id="EXCEPTIONS"`))
		})

		It("reuses the section and measures elapsed from the first exception", func() {
			Expect(l.DebugException("first")).To(Succeed())
			clock.Advance(3 * time.Second)
			Expect(l.ErrorException("second")).To(Succeed())

			snap := l.Snapshot()
			Expect(snap.Sections).To(HaveLen(1))

			sec := snap.Sections[0]
			Expect(sec.Logs).To(HaveLen(2))
			Expect(sec.Logs[0].Type).To(Equal(htmllog.TypeDebug))
			Expect(sec.Logs[1].Value).To(Equal("second"))
			Expect(sec.Elapsed).To(Equal(3 * time.Second))
		})

		It("sits alongside regular sections in creation order", func() {
			Expect(l.CreateSection("Phase 1", "P1")).To(Succeed())
			Expect(l.ErrorException("boom")).To(Succeed())
			Expect(l.CreateSection("Phase 2", "P2")).To(Succeed())

			snap := l.Snapshot()
			Expect(snap.Sections[1].Key).To(Equal(htmllog.ExceptionsKey))
		})
	})

	Describe("Snapshot", func() {
		It("is isolated from later changes", func() {
			Expect(l.CreateSection("Phase 1", "P1")).To(Succeed())
			Expect(l.Info("P1", "one")).To(Succeed())
			snap := l.Snapshot()

			Expect(l.Info("P1", "two")).To(Succeed())
			Expect(snap.Sections[0].Logs).To(HaveLen(1))
		})
	})

	Describe("Render", func() {
		It("matches the persisted report", func() {
			Expect(l.CreateSection("Phase 1", "P1")).To(Succeed())
			Expect(l.Info("P1", "one")).To(Succeed())

			var buf bytes.Buffer
			Expect(l.Render(&buf)).To(Succeed())
			Expect(buf.String()).To(Equal(readReport()))
		})
	})

	Describe("concurrent use", func() {
		It("keeps every entry", func() {
			Expect(l.CreateSection("Phase 1", "P1")).To(Succeed())

			var wg sync.WaitGroup
			for i := 0; i < 20; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					defer GinkgoRecover()
					Expect(l.Info("P1", "tick")).To(Succeed())
				}()
			}
			wg.Wait()

			Expect(entryLine.FindAllString(readReport(), -1)).To(HaveLen(20))
		})
	})

	Describe("diagnostics", func() {
		It("warns when a section is recreated", func() {
			var buf bytes.Buffer
			diag := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
			dl, err := htmllog.New("Import", "desc", "/tmp/logs",
				htmllog.WithFs(fs),
				htmllog.WithClock(clock.Now),
				htmllog.WithLogger(diag))
			Expect(err).NotTo(HaveOccurred())

			Expect(dl.CreateSection("Phase 1", "P1")).To(Succeed())
			Expect(dl.CreateSection("Phase 1", "P1")).To(Succeed())

			Expect(buf.String()).To(ContainSubstring("section recreated"))
			Expect(buf.String()).To(ContainSubstring("report saved"))
		})
	})
})

var _ = Describe("Import scenario", func() {
	It("leaves a report on disk with both entries under P1", func() {
		logsPath := GinkgoT().TempDir()
		l, err := htmllog.New("Import", "desc", logsPath)
		Expect(err).NotTo(HaveOccurred())

		Expect(l.CreateSection("Phase 1", "P1")).To(Succeed())
		Expect(l.Info("P1", "started")).To(Succeed())
		Expect(l.Error("P1", "bad row 4")).To(Succeed())
		Expect(l.CloseSection("P1")).To(Succeed())

		start := l.Snapshot().Start
		expected := filepath.Join(logsPath,
			start.Format("2006"), start.Format("01"), start.Format("02"),
			"Import_"+start.Format("20060102_150405")+".html")
		Expect(l.Path()).To(Equal(expected))
		Expect(expected).To(BeARegularFile())

		data, err := afero.ReadFile(afero.NewOsFs(), expected)
		Expect(err).NotTo(HaveOccurred())
		out := string(data)

		anchor := strings.Index(out, `id="P1"`)
		Expect(anchor).To(BeNumerically(">", 0))
		Expect(strings.Index(out, "started")).To(BeNumerically(">", anchor))
		Expect(strings.Index(out, "bad row 4")).To(BeNumerically(">", anchor))
		Expect(out).To(MatchRegexp(`Elapsed: \d+ ms`))
	})
})

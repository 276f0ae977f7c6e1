package predictor_test

import (
	"errors"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/bpsim/predictor"
)

var _ = Describe("Config", func() {
	It("should accept the defaults for every variant", func() {
		for _, kind := range []predictor.Kind{
			predictor.KindNotTaken,
			predictor.KindBimodal,
			predictor.KindGShare,
			predictor.KindYAGS,
		} {
			config := predictor.DefaultConfig(kind)
			Expect(config.Validate()).To(Succeed())
		}
	})

	It("should reject a non-power-of-two table size before any record is processed", func() {
		config := predictor.DefaultConfig(predictor.KindBimodal)
		config.TableSize = 1000

		_, err := predictor.New(config)
		var configErr *predictor.ConfigError
		Expect(errors.As(err, &configErr)).To(BeTrue())
		Expect(configErr.Field).To(Equal("table_size"))
	})

	It("should reject a zero table size", func() {
		config := predictor.DefaultConfig(predictor.KindGShare)
		config.TableSize = 0

		var configErr *predictor.ConfigError
		Expect(errors.As(config.Validate(), &configErr)).To(BeTrue())
	})

	It("should reject a negative history width", func() {
		config := predictor.DefaultConfig(predictor.KindGShare)
		config.HistoryWidth = -1

		var configErr *predictor.ConfigError
		Expect(errors.As(config.Validate(), &configErr)).To(BeTrue())
		Expect(configErr.Field).To(Equal("history_width"))
	})

	It("should reject a history width above 64", func() {
		config := predictor.DefaultConfig(predictor.KindYAGS)
		config.HistoryWidth = 65
		Expect(config.Validate()).To(HaveOccurred())
	})

	It("should accept history width 0 as a valid degenerate configuration", func() {
		config := predictor.DefaultConfig(predictor.KindGShare)
		config.HistoryWidth = 0
		Expect(config.Validate()).To(Succeed())
	})

	It("should reject a non-power-of-two exception cache size for YAGS", func() {
		config := predictor.DefaultConfig(predictor.KindYAGS)
		config.ExceptionSize = 100

		var configErr *predictor.ConfigError
		Expect(errors.As(config.Validate(), &configErr)).To(BeTrue())
		Expect(configErr.Field).To(Equal("exception_size"))
	})

	It("should reject an out-of-range YAGS tag width", func() {
		config := predictor.DefaultConfig(predictor.KindYAGS)
		config.TagWidth = 0
		Expect(config.Validate()).To(HaveOccurred())

		config.TagWidth = 33
		Expect(config.Validate()).To(HaveOccurred())
	})

	It("should not size tables for the static not-taken predictor", func() {
		config := predictor.Config{Kind: predictor.KindNotTaken}
		Expect(config.Validate()).To(Succeed())
	})

	It("should reject an unknown variant", func() {
		config := predictor.Config{Kind: "perceptron"}
		Expect(config.Validate()).To(HaveOccurred())

		_, err := predictor.ParseKind("perceptron")
		Expect(err).To(HaveOccurred())
	})

	It("should parse the known variant names", func() {
		kind, err := predictor.ParseKind("yags")
		Expect(err).NotTo(HaveOccurred())
		Expect(kind).To(Equal(predictor.KindYAGS))
	})

	It("should round-trip through a JSON file", func() {
		config := predictor.DefaultConfig(predictor.KindYAGS)
		config.TableSize = 2048
		config.HistoryWidth = 10

		path := filepath.Join(GinkgoT().TempDir(), "bp.json")
		Expect(config.SaveConfig(path)).To(Succeed())

		loaded, err := predictor.LoadConfig(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(*loaded).To(Equal(config))
	})

	It("should fail to load a missing config file", func() {
		_, err := predictor.LoadConfig(filepath.Join(GinkgoT().TempDir(), "absent.json"))
		Expect(err).To(HaveOccurred())
	})
})

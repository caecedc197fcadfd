package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Config", func() {
	var cfg Config

	BeforeEach(func() {
		cfg = DefaultConfig()
	})

	It("should accept the default configuration", func() {
		Expect(cfg.Validate()).To(Succeed())
	})

	expectKind := func(err error, kind ConfigErrorKind) {
		var cfgErr *ConfigError
		Expect(err).To(HaveOccurred())
		Expect(err).To(BeAssignableToTypeOf(cfgErr))
		Expect(err.(*ConfigError).Kind).To(Equal(kind))
	}

	It("should reject a non-positive horizon", func() {
		cfg.HorizonYears = 0
		expectKind(cfg.Validate(), ConfigErrOutOfRange)
	})

	It("should reject a negative fertility mean", func() {
		cfg.FertilityMean = -0.1
		expectKind(cfg.Validate(), ConfigErrOutOfRange)
	})

	It("should reject probabilities outside [0, 1]", func() {
		cfg.InviteProb = 1.5
		expectKind(cfg.Validate(), ConfigErrOutOfRange)

		cfg = DefaultConfig()
		cfg.PromotionProb = -0.2
		expectKind(cfg.Validate(), ConfigErrOutOfRange)
	})

	It("should reject non-positive probation bounds", func() {
		cfg.ProbationMin = 0
		expectKind(cfg.Validate(), ConfigErrOutOfRange)
	})

	It("should reject non-positive age thresholds", func() {
		cfg.AgePartnerToEmeritus = 0
		expectKind(cfg.Validate(), ConfigErrOutOfRange)

		cfg = DefaultConfig()
		cfg.AgeEconRightsEnd = -1
		expectKind(cfg.Validate(), ConfigErrOutOfRange)
	})

	It("should reject negative initial population sizes", func() {
		cfg.InitialTrainees = -1
		expectKind(cfg.Validate(), ConfigErrOutOfRange)
	})

	It("should reject an inverted fertility window", func() {
		cfg.FertilityAgeStart = 42
		cfg.FertilityAgeEnd = 28
		expectKind(cfg.Validate(), ConfigErrInvalidOrdering)
	})

	It("should reject inverted probation bounds", func() {
		cfg.ProbationMin = 9
		cfg.ProbationMax = 6
		expectKind(cfg.Validate(), ConfigErrInvalidOrdering)
	})

	It("should reject an empty eligible parent status set", func() {
		cfg.EligibleParentStatus = nil
		expectKind(cfg.Validate(), ConfigErrEmptySet)
	})

	It("should reject statuses that cannot qualify a parent", func() {
		cfg.EligibleParentStatus = []Status{StatusCandidate}
		expectKind(cfg.Validate(), ConfigErrOutOfRange)
	})

	It("should accept an econ rights age below the emeritus age", func() {
		// Documented as zero-duration economic rights, not an error.
		cfg.AgePartnerToEmeritus = 65
		cfg.AgeEconRightsEnd = 55
		Expect(cfg.Validate()).To(Succeed())
	})
})

package taxonomy

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/spigell/jobfit/internal/textmatch"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// File is the on-disk shape of a registry.
type File struct {
	Keywords    map[Category][]string `yaml:"keywords" validate:"required,min=1,dive,keys,required,endkeys,min=1"`
	Companies   CompanyFile           `yaml:"companies"`
	Occupations OccupationFile        `yaml:"occupations"`
	Regions     RegionFile            `yaml:"regions"`
	Signals     SignalFile            `yaml:"signals"`
}

type CompanyFile struct {
	Tier1               []string `yaml:"tier1"`
	Notable             []string `yaml:"notable"`
	Startups            []string `yaml:"startups"`
	InternationalHiring []string `yaml:"international_hiring"`
	LiveCoding          []string `yaml:"live_coding"`
	TakeHome            []string `yaml:"take_home"`
	NetworkingHigh      []string `yaml:"networking_high"`
	NetworkingMedium    []string `yaml:"networking_medium"`
	EnterpriseLanguage  []string `yaml:"enterprise_language"`
	FundedLanguage      []string `yaml:"funded_language"`
	EarlyStageLanguage  []string `yaml:"early_stage_language"`
}

type OccupationFile struct {
	Priority     []string          `yaml:"priority" validate:"dive,numeric"`
	Eligible     []string          `yaml:"eligible" validate:"dive,numeric"`
	Descriptions map[string]string `yaml:"descriptions"`
	Titles       []TitleCode       `yaml:"titles" validate:"dive"`
}

type TitleCode struct {
	Title string `yaml:"title" validate:"required"`
	Code  string `yaml:"code" validate:"required,numeric"`
}

type RegionFile struct {
	Target  []string `yaml:"target"`
	Country []string `yaml:"country"`
	Remote  []string `yaml:"remote"`
}

type SignalFile struct {
	Seniority struct {
		Senior     []string `yaml:"senior"`
		Leadership []string `yaml:"leadership"`
		Junior     []string `yaml:"junior"`
		Lead       []string `yaml:"lead"`
		Staff      []string `yaml:"staff"`
		Stretch    []string `yaml:"stretch"`
		QuickWin   []string `yaml:"quick_win"`
	} `yaml:"seniority"`
	Roles struct {
		Priority        []string `yaml:"priority"`
		NoCoding        []string `yaml:"no_coding"`
		HeavyCoding     []string `yaml:"heavy_coding"`
		Mixed           []string `yaml:"mixed"`
		PureEngineering []string `yaml:"pure_engineering"`
		NonCoding       []string `yaml:"non_coding"`
	} `yaml:"roles"`
	Employment struct {
		FullTime          []string `yaml:"full_time"`
		Temporary         []string `yaml:"temporary"`
		Contract          []string `yaml:"contract"`
		PermanentLanguage []string `yaml:"permanent_language"`
	} `yaml:"employment"`
	Barrier struct {
		LocalExperience []string `yaml:"local_experience"`
		International   []string `yaml:"international"`
		Welcoming       []string `yaml:"welcoming"`
		GlobalWork      []string `yaml:"global_work"`
	} `yaml:"barrier"`
	Openness struct {
		Diversity     []string `yaml:"diversity"`
		Sponsorship   []string `yaml:"sponsorship"`
		NoSponsorship []string `yaml:"no_sponsorship"`
	} `yaml:"openness"`
	Interview struct {
		CaseStudy         []string `yaml:"case_study"`
		Stakeholder       []string `yaml:"stakeholder"`
		BIFocus           []string `yaml:"bi_focus"`
		CodingPlatforms   []string `yaml:"coding_platforms"`
		SystemDesign      []string `yaml:"system_design"`
		StrongProgramming []string `yaml:"strong_programming"`
		Languages         []string `yaml:"languages"`
		NonTechIndustries []string `yaml:"non_tech_industries"`
	} `yaml:"interview"`
}

// LoadError reports a registry file that could not be read or parsed.
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("taxonomy load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("taxonomy load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

var defaultRegistry = sync.OnceValues(func() (*Registry, error) {
	return Parse(defaultsYAML)
})

// Default returns the registry built from the embedded defaults. The same
// instance is shared by every caller since it is never mutated.
func Default() (*Registry, error) {
	return defaultRegistry()
}

// Load reads a registry file from disk.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Message: fmt.Sprintf("reading %q", path), Cause: err}
	}
	return Parse(data)
}

// Parse decodes, validates and builds a registry from YAML.
func Parse(data []byte) (*Registry, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, &LoadError{Message: "decoding yaml", Cause: err}
	}
	return Build(&f)
}

// Build validates f and turns it into an immutable Registry.
func Build(f *File) (*Registry, error) {
	if f == nil {
		return nil, &LoadError{Message: "registry file is required"}
	}
	if err := validator.New().Struct(f); err != nil {
		return nil, &LoadError{Message: "validating registry", Cause: err}
	}

	tax, err := NewTaxonomy(f.Keywords)
	if err != nil {
		return nil, &LoadError{Message: "building taxonomy", Cause: err}
	}

	titles := make(map[string]string, len(f.Occupations.Titles))
	for _, tc := range f.Occupations.Titles {
		titles[tc.Title] = tc.Code
	}

	s := f.Signals
	l := textmatch.NewList

	return &Registry{
		taxonomy:    tax,
		occupations: NewOccupations(titles, f.Occupations.Priority, f.Occupations.Eligible, f.Occupations.Descriptions),
		companies: Companies{
			Tier1:               l(f.Companies.Tier1...),
			Notable:             l(f.Companies.Notable...),
			Startups:            l(f.Companies.Startups...),
			InternationalHiring: l(f.Companies.InternationalHiring...),
			LiveCoding:          l(f.Companies.LiveCoding...),
			TakeHome:            l(f.Companies.TakeHome...),
			NetworkingHigh:      l(f.Companies.NetworkingHigh...),
			NetworkingMedium:    l(f.Companies.NetworkingMedium...),
			EnterpriseLanguage:  l(f.Companies.EnterpriseLanguage...),
			FundedLanguage:      l(f.Companies.FundedLanguage...),
			EarlyStageLanguage:  l(f.Companies.EarlyStageLanguage...),
		},
		regions: Regions{
			Target:  l(f.Regions.Target...),
			Country: l(f.Regions.Country...),
			Remote:  l(f.Regions.Remote...),
		},
		signals: Signals{
			Seniority: Seniority{
				Senior:     l(s.Seniority.Senior...),
				Leadership: l(s.Seniority.Leadership...),
				Junior:     l(s.Seniority.Junior...),
				Lead:       l(s.Seniority.Lead...),
				Staff:      l(s.Seniority.Staff...),
				Stretch:    l(s.Seniority.Stretch...),
				QuickWin:   l(s.Seniority.QuickWin...),
			},
			Roles: Roles{
				Priority:        l(s.Roles.Priority...),
				NoCoding:        l(s.Roles.NoCoding...),
				HeavyCoding:     l(s.Roles.HeavyCoding...),
				Mixed:           l(s.Roles.Mixed...),
				PureEngineering: l(s.Roles.PureEngineering...),
				NonCoding:       l(s.Roles.NonCoding...),
			},
			Employment: Employment{
				FullTime:          l(s.Employment.FullTime...),
				Temporary:         l(s.Employment.Temporary...),
				Contract:          l(s.Employment.Contract...),
				PermanentLanguage: l(s.Employment.PermanentLanguage...),
			},
			Barrier: Barrier{
				LocalExperience: l(s.Barrier.LocalExperience...),
				International:   l(s.Barrier.International...),
				Welcoming:       l(s.Barrier.Welcoming...),
				GlobalWork:      l(s.Barrier.GlobalWork...),
			},
			Openness: Openness{
				Diversity:     l(s.Openness.Diversity...),
				Sponsorship:   l(s.Openness.Sponsorship...),
				NoSponsorship: l(s.Openness.NoSponsorship...),
			},
			Interview: Interview{
				CaseStudy:         l(s.Interview.CaseStudy...),
				Stakeholder:       l(s.Interview.Stakeholder...),
				BIFocus:           l(s.Interview.BIFocus...),
				CodingPlatforms:   l(s.Interview.CodingPlatforms...),
				SystemDesign:      l(s.Interview.SystemDesign...),
				StrongProgramming: l(s.Interview.StrongProgramming...),
				ExpertLanguages:   l(expertPhrases(s.Interview.Languages)...),
				NonTechIndustries: l(s.Interview.NonTechIndustries...),
			},
		},
	}, nil
}

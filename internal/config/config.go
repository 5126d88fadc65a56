package config

import (
	"os"
	"strings"

	"github.com/klokku/finance-kanban/pkg/finance"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Host string `koanf:"host"`
	Addr string `koanf:"addr"`
	Log  Log    `koanf:"log"`
	Game Game   `koanf:"game"`
}

type Log struct {
	Level string `koanf:"level"`
}

type Game struct {
	Difficulty string `koanf:"difficulty"`
	Housing    string `koanf:"housing"`
	// Seed of zero derives a seed from the clock for every new game.
	Seed  uint64 `koanf:"seed"`
	Rules Rules  `koanf:"rules"`
}

type Rules struct {
	HousingChangeFee         float64                `koanf:"housingchangefee"`
	BorrowChunk              float64                `koanf:"borrowchunk"`
	DebtBorrowCeiling        float64                `koanf:"debtborrowceiling"`
	DefaultRandomProbability float64                `koanf:"defaultrandomprobability"`
	CreditInterestRate       float64                `koanf:"creditinterestrate"`
	LateFeePerFixed          float64                `koanf:"latefeeperfixed"`
	SavingsInterestRate      float64                `koanf:"savingsinterestrate"`
	InvestmentReturnMin      float64                `koanf:"investmentreturnmin"`
	InvestmentReturnMax      float64                `koanf:"investmentreturnmax"`
	RandomEvents             map[string]RandomEvent `koanf:"randomevents"`
}

type RandomEvent struct {
	Probability float64 `koanf:"probability"`
	MaxPerYear  int     `koanf:"maxperyear"`
}

func defaults() Application {
	rules := finance.DefaultRules()
	return Application{
		Host: "http://localhost:8181",
		Addr: ":8181",
		Log:  Log{Level: ""},
		Game: Game{
			Difficulty: "medium",
			Housing:    "sharedApartment",
			Rules: Rules{
				HousingChangeFee:         rules.HousingChangeFee.InexactFloat64(),
				BorrowChunk:              rules.BorrowChunk.InexactFloat64(),
				DebtBorrowCeiling:        0,
				DefaultRandomProbability: rules.DefaultRandomProbability,
				CreditInterestRate:       rules.CreditInterestRate.InexactFloat64(),
				LateFeePerFixed:          rules.LateFeePerFixed.InexactFloat64(),
				SavingsInterestRate:      rules.SavingsInterestRate.InexactFloat64(),
				InvestmentReturnMin:      rules.InvestmentReturnMin,
				InvestmentReturnMax:      rules.InvestmentReturnMax,
			},
		},
	}
}

// Load layers defaults, the YAML file at path and FINKANBAN_* environment variables.
func Load(path string) (Application, error) {
	var k = koanf.New(".")

	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err := k.Load(env.Provider(".", env.Opt{
		Prefix: "FINKANBAN_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "FINKANBAN_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}
	return app, nil
}

// EngineRules converts the configured values into engine rules. Validation
// happens when the scenario builder is created.
func (g Game) EngineRules() finance.Rules {
	rules := finance.DefaultRules()
	r := g.Rules
	rules.HousingChangeFee = decimal.NewFromFloat(r.HousingChangeFee)
	rules.BorrowChunk = decimal.NewFromFloat(r.BorrowChunk)
	rules.DebtBorrowCeiling = decimal.NewFromFloat(r.DebtBorrowCeiling)
	rules.DefaultRandomProbability = r.DefaultRandomProbability
	rules.CreditInterestRate = decimal.NewFromFloat(r.CreditInterestRate)
	rules.LateFeePerFixed = decimal.NewFromFloat(r.LateFeePerFixed)
	rules.SavingsInterestRate = decimal.NewFromFloat(r.SavingsInterestRate)
	rules.InvestmentReturnMin = r.InvestmentReturnMin
	rules.InvestmentReturnMax = r.InvestmentReturnMax
	for key, event := range r.RandomEvents {
		rules.RandomRules[key] = finance.RandomRule{Probability: event.Probability, MaxPerYear: event.MaxPerYear}
	}
	return rules
}

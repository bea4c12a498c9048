package rhymehammer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kalexmills/rhyme-hammer/src/rhymehammer/db"
)

// Prefix starts every message the bot responds to.
const Prefix = "!rhyme"

type Operation uint8

const (
	OpLookup Operation = iota
	OpHistory
	OpClearHistory
	OpWordOfDay
	OpLines
	OpAnalyze
	OpUsage
	OpHelp
	OpFeatureOn
	OpFeatureOff
	OpFeatureList
)

var operationNames = map[Operation]string{
	OpLookup:       "lookup",
	OpHistory:      "history",
	OpClearHistory: "history_clear",
	OpWordOfDay:    "wotd",
	OpLines:        "lines",
	OpAnalyze:      "analyze",
	OpUsage:        "usage",
	OpHelp:         "help",
	OpFeatureOn:    "feature_on",
	OpFeatureOff:   "feature_off",
	OpFeatureList:  "feature_list",
}

func (o Operation) String() string {
	return operationNames[o]
}

// Admin reports whether the operation changes or reveals channel configuration.
func (o Operation) Admin() bool {
	return o == OpFeatureOn || o == OpFeatureOff || o == OpFeatureList
}

type Command struct {
	Operation Operation
	// Word and Syllables are set for lookups; Syllables is zero when no filter was given.
	Word      string
	Syllables int
	// Line is the text following `lines` or `analyze`.
	Line     string
	Target   string
	Features db.ConfigFlag
}

func (c Command) MentionTarget() string {
	if c.Target == "global" {
		return "global"
	}
	return fmt.Sprintf("<#%s>", c.Target)
}

// IsCommand reports whether content is addressed to the bot.
func IsCommand(content string) bool {
	return content == Prefix || strings.HasPrefix(content, Prefix+" ")
}

var errNoCommand = errors.New("expected a word or a command after `!rhyme`; send `!rhyme help` for help")

// ParseCommand parses message content with the leading prefix already removed.
func ParseCommand(content string) (Command, error) {
	tokens := strings.Fields(content)
	if len(tokens) < 1 {
		return Command{}, errNoCommand
	}
	switch tokens[0] {
	case "help":
		return Command{Operation: OpHelp}, nil
	case "wotd":
		return Command{Operation: OpWordOfDay}, nil
	case "usage":
		return Command{Operation: OpUsage}, nil
	case "history":
		if len(tokens) > 1 && tokens[1] == "clear" {
			return Command{Operation: OpClearHistory}, nil
		}
		return Command{Operation: OpHistory}, nil
	case "lines", "analyze":
		op := OpLines
		if tokens[0] == "analyze" {
			op = OpAnalyze
		}
		line := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(content), tokens[0]))
		if line == "" {
			return Command{}, fmt.Errorf("expected a line of text after `%s`; send `!rhyme help` for help", tokens[0])
		}
		return Command{Operation: op, Line: line}, nil
	case "feature":
		return parseFeatureCommand(tokens)
	}
	return parseLookup(tokens)
}

func parseLookup(tokens []string) (Command, error) {
	result := Command{Operation: OpLookup, Word: strings.ToLower(tokens[0])}
	switch len(tokens) {
	case 1:
	case 2:
		n, err := strconv.Atoi(tokens[1])
		if err != nil || n < 1 {
			return Command{}, fmt.Errorf("couldn't parse '%s' as a syllable count", tokens[1])
		}
		result.Syllables = n
	default:
		return Command{}, errors.New("expected a single word, optionally followed by a syllable count")
	}
	return result, nil
}

func parseFeatureCommand(tokens []string) (Command, error) {
	if len(tokens) < 2 {
		return Command{}, errors.New("expected `on`, `off` or `list` after `feature`; send `!rhyme help` for help")
	}
	result := Command{}
	switch tokens[1] {
	case "on":
		result.Operation = OpFeatureOn
		if len(tokens) < 4 {
			return Command{}, errors.New("expected a target and list of features after `feature on`; send `!rhyme help` for help")
		}
	case "off":
		result.Operation = OpFeatureOff
		if len(tokens) < 4 {
			return Command{}, errors.New("expected a target and list of features after `feature off`; send `!rhyme help` for help")
		}
	case "list":
		result.Operation = OpFeatureList
		if len(tokens) < 3 {
			return Command{}, errors.New("expected a target after `feature list`; send `!rhyme help` for help")
		}
	default:
		return Command{}, fmt.Errorf("could not understand command feature %s", tokens[1])
	}

	// parse channel mention
	result.Target = tokens[2]
	if result.Target != "global" && strings.HasPrefix(result.Target, "<#") {
		id, err := strconv.ParseInt(strings.TrimSuffix(result.Target[2:], ">"), 10, 64)
		if err != nil {
			return Command{}, fmt.Errorf("couldn't parse target '%s' as valid channel mention", result.Target)
		}
		result.Target = strconv.FormatInt(id, 10)
	} else if result.Target != "global" {
		return Command{}, fmt.Errorf("couldn't parse target '%s' as valid target", result.Target)
	}

	var err error
	result.Features, err = parseFeatures(tokens[3:])
	if err != nil {
		return Command{}, err
	}
	return result, nil
}

func parseFeatures(features []string) (db.ConfigFlag, error) {
	var result db.ConfigFlag
outer:
	for _, feature := range features {
		for _, fn := range db.FlagNames {
			if strings.EqualFold(feature, fn.Name) {
				result |= fn.Flag
				continue outer
			}
		}
		return 0, fmt.Errorf("could not understand '%s' as a valid feature; send `!rhyme help` for help", feature)
	}
	return result, nil
}

var Help = `~~~!rhyme <word> [syllables]~~~ finds rhymes, near rhymes, sound-alikes and related words, optionally only those with the given number of syllables.
  ~~~!rhyme history~~~ shows the words you looked up most recently; ~~~!rhyme history clear~~~ forgets them.
  ~~~!rhyme wotd~~~ shows the word of the day.
  ~~~!rhyme lines <line>~~~ writes new lines that rhyme with yours.
  ~~~!rhyme analyze <line>~~~ describes the mood and style of a line.
  ~~~!rhyme usage~~~ shows how much line generation is left today.
`

var AdminHelp = `All commands must be sent in the guild they are meant to apply to.
  ~~~!rhyme feature on [target] [feature feature...]~~~
  ~~~!rhyme feature off [target] [feature feature...]~~~
  ~~~!rhyme feature list [target]~~~

~~~[target]~~~ can be either a channel mention or ~~~global~~~ to enable features for every channel in the guild.
~~~[feature feature...]~~~ is a space-separated list of features from the below list.

   - ~~~ShowStrength~~~ - shows how strongly each word rhymes
   - ~~~ShowStress~~~ - shows the syllable breakdown and stress pattern of each word
   - ~~~PostWordOfDay~~~ - posts the word of the day in the channel every morning
   - ~~~GenerateLines~~~ - allows ~~~lines~~~ and ~~~analyze~~~ in the channel
`

func init() {
	Help = strings.ReplaceAll(Help, "~~~", "`")
	AdminHelp = strings.ReplaceAll(AdminHelp, "~~~", "`")
}

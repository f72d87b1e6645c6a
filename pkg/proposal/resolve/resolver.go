package resolve

import (
	"strings"

	"github.com/adnan8914/appsynergies-proposal-generator/pkg/proposal/xml"
)

// Resolver replaces tokens in documents. A Resolver holds no per-document
// state and may be shared between goroutines.
type Resolver struct {
	policy StylePolicy
	rules  []Rule
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithStylePolicy sets the policy choosing which run receives a value.
func WithStylePolicy(p StylePolicy) Option {
	return func(r *Resolver) {
		if p != nil {
			r.policy = p
		}
	}
}

// WithRule adds a rule tried before the general replacement.
func WithRule(rule Rule) Option {
	return func(r *Resolver) {
		r.rules = append(r.rules, rule)
	}
}

// WithoutRules removes every rule, including the default annotation rule.
func WithoutRules() Option {
	return func(r *Resolver) {
		r.rules = nil
	}
}

// New creates a resolver using FirstRun and AdditionalFeaturesRule unless
// options say otherwise.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		policy: FirstRun,
		rules:  []Rule{AdditionalFeaturesRule()},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Policy returns the resolver's style policy.
func (r *Resolver) Policy() StylePolicy {
	return r.policy
}

// Resolve replaces the tokens in every region of doc. It fails before
// touching the document if a key is not a valid token or a value cannot be
// formatted.
func (r *Resolver) Resolve(doc *xml.Document, tokens TokenMap) (*Report, error) {
	keys, values, err := prepare(tokens)
	if err != nil {
		return nil, err
	}
	report := newReport(keys)
	for _, e := range discover(doc) {
		if e.skipped != nil {
			report.add(*e.skipped)
			continue
		}
		report.add(r.resolveRegion(e.region, keys, values))
	}
	return report, nil
}

// ResolveRegions replaces the tokens in the given regions, in order.
func (r *Resolver) ResolveRegions(regions []Region, tokens TokenMap) (*Report, error) {
	keys, values, err := prepare(tokens)
	if err != nil {
		return nil, err
	}
	report := newReport(keys)
	for _, region := range regions {
		report.add(r.resolveRegion(region, keys, values))
	}
	return report, nil
}

func prepare(tokens TokenMap) ([]string, map[string]string, error) {
	if err := tokens.Validate(); err != nil {
		return nil, nil, err
	}
	values, err := tokens.Format()
	if err != nil {
		return nil, nil, err
	}
	return tokens.Keys(), values, nil
}

func (r *Resolver) resolveRegion(region Region, keys []string, values map[string]string) RegionResult {
	res := RegionResult{Kind: region.Kind(), Location: region.Location()}
	if fr, ok := region.(fallbackRegion); ok {
		res.Fallback = fr.InFallback()
	}
	if IsEmpty(region) {
		res.Status = StatusSkippedEmpty
		return res
	}
	for _, key := range keys {
		if !strings.Contains(region.Text(), key) {
			continue
		}
		value := values[key]
		if rule := r.applyRule(region, key, value); rule != "" {
			res.Tokens = append(res.Tokens, key)
			res.Rule = rule
			continue
		}
		for n := replaceAll(region.Runs(), key, value, r.policy); n > 0; n-- {
			res.Tokens = append(res.Tokens, key)
		}
	}
	res.Status = StatusUnchanged
	if len(res.Tokens) > 0 {
		res.Status = StatusMatched
	}
	return res
}

func (r *Resolver) applyRule(region Region, key, value string) string {
	for _, rule := range r.rules {
		if rule.Apply(region, key, value) {
			return rule.Name()
		}
	}
	return ""
}

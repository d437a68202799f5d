package knowledge

import "strings"

// has reports whether key is present in set.
func has(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}

// factionLabel mirrors _get_faction_label: a coarse grouping derived from
// tags, falling back to "wild" when nothing more specific applies.
func factionLabel(s MonsterStats) string {
	switch {
	case has(s.Tags, "undead"):
		return "undead"
	case has(s.Tags, "construct"):
		return "construct"
	case has(s.Tags, "demonic"):
		return "demonic"
	default:
		return "wild"
	}
}

// roleLabel mirrors _get_role_label: checks tags, abilities, and name
// substrings for known archetypes, in the same priority order as the
// original (swarm and boss take precedence over the rest).
func roleLabel(s MonsterStats) string {
	name := strings.ToLower(s.Name)
	switch {
	case has(s.Tags, "swarm_ai"):
		return "swarm"
	case has(s.Tags, "boss"):
		return "boss"
	case has(s.Abilities, "mindless"):
		return "mindless"
	case has(s.Tags, "venomous") || strings.Contains(name, "venom"):
		return "venomous"
	case has(s.Abilities, "regenerator"):
		return "regenerator"
	case strings.Contains(name, "brute"):
		return "brute"
	case strings.Contains(name, "scout"):
		return "scout"
	case has(s.Tags, "elite"):
		return "elite"
	case has(s.Tags, "leader"):
		return "leader"
	default:
		return "standard"
	}
}

// durabilityLabel mirrors _get_durability_label's HP+defense*5 threshold
// bucketing.
func durabilityLabel(s MonsterStats) string {
	score := s.MaxHP + s.DefenseScore*5
	switch {
	case score <= 15:
		return "fragile"
	case score <= 40:
		return "sturdy"
	case score <= 80:
		return "very tough"
	default:
		return "monstrous"
	}
}

// damageLabel mirrors _get_damage_label's avg-damage+power bucketing.
func damageLabel(s MonsterStats) string {
	score := s.AverageDamage + s.AttackPower
	switch {
	case score <= 4:
		return "light"
	case score <= 9:
		return "moderate"
	case score <= 16:
		return "heavy"
	default:
		return "brutal"
	}
}

// speedLabel mirrors _get_speed_label; coarse selects the coarser
// TierBattled label, which reports the fastest bucket as "fast" instead of
// the TierUnderstood-only "lightning fast".
func speedLabel(s MonsterStats, coarse bool) string {
	switch {
	case s.SpeedMultiplier <= 0.8:
		return "sluggish"
	case s.SpeedMultiplier <= 1.2:
		return "normal"
	case s.SpeedMultiplier <= 1.6:
		if coarse {
			return "fast"
		}
		return "fast"
	default:
		if coarse {
			return "fast"
		}
		return "lightning fast"
	}
}

// accuracyLabel mirrors _get_accuracy_label.
func accuracyLabel(s MonsterStats) string {
	switch {
	case s.Accuracy <= 1:
		return "often misses"
	case s.Accuracy <= 3:
		return "usually hits"
	default:
		return "rarely misses"
	}
}

// evasionLabel mirrors _get_evasion_label.
func evasionLabel(s MonsterStats) string {
	switch {
	case s.Evasion <= 0:
		return "easy to hit"
	case s.Evasion <= 2:
		return "average to hit"
	default:
		return "hard to hit"
	}
}

// specialWarnings mirrors _get_special_warnings: trait- and tag-based
// one-line cautions, collected in the order the original checks them.
func specialWarnings(s MonsterStats) []string {
	var out []string
	if has(s.Abilities, "plague_carrier") {
		out = append(out, "carries plague")
	}
	if has(s.Tags, "swarm_ai") {
		out = append(out, "calls allies when it spots you")
	}
	if has(s.Abilities, "fast_attacker") {
		out = append(out, "attacks more than once per round")
	}
	if has(s.Abilities, "portal_curious") {
		out = append(out, "drawn to portals")
	}
	return out
}

// behaviorLabels mirrors _get_behavior_labels.
func behaviorLabels(s MonsterStats) []string {
	var out []string
	if has(s.Tags, "ranged") {
		out = append(out, "keeps its distance")
	}
	if has(s.Tags, "ambusher") {
		out = append(out, "ambushes from hiding")
	}
	if has(s.Abilities, "regenerator") {
		out = append(out, "heals over time")
	}
	return out
}

// adviceLine mirrors _get_advice_line's fixed priority order: plague >
// swarm > corrosion > portal-curious > lightning-fast > regenerator. Only
// the first matching condition contributes a line.
func adviceLine(s MonsterStats) string {
	switch {
	case has(s.Abilities, "plague_carrier"):
		return "Avoid melee; the plague lingers after the fight."
	case has(s.Tags, "swarm_ai"):
		return "Isolate it before its allies arrive."
	case has(s.Abilities, "corrosive"):
		return "Ranged attacks avoid armor damage from its acid."
	case has(s.Abilities, "portal_curious"):
		return "Keep it away from active portals."
	case s.SpeedMultiplier > 1.6:
		return "It will close distance before you can retreat."
	case has(s.Abilities, "regenerator"):
		return "Finish it quickly or bring fire and acid."
	default:
		return ""
	}
}

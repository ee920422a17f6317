/*
 *    Copyright 2025 blockarchitech
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

package repository

import "blockarchitech.com/lifeboard/internal/models"

// Labels written by earlier versions of the dashboard, mapped to canonical values.
var (
	legacyTaskTypes = map[string]models.TaskType{
		"Günlük":   models.TaskDaily,
		"Haftalık": models.TaskWeekly,
		"Aylık":    models.TaskMonthly,
	}
	legacyPriorities = map[string]models.Priority{
		"Düşük":  models.PriorityLow,
		"Orta":   models.PriorityMedium,
		"Yüksek": models.PriorityHigh,
	}
	legacyPlatforms = map[string]models.Platform{
		"Diğer": models.PlatformOther,
	}
	legacyStatuses = map[string]models.AppStatus{
		"Fikir":          models.StatusIdea,
		"Planlama":       models.StatusPlanning,
		"Geliştiriliyor": models.StatusInDevelopment,
		"Test":           models.StatusTesting,
		"Yayınlandı":     models.StatusReleased,
		"Arşivlendi":     models.StatusArchived,
	}
	legacyMoods = map[string]models.Mood{
		"Mutlu":                     models.MoodHappy,
		"İyi":                       models.MoodGood,
		"Normal":                    models.MoodNormal,
		"Üzgün":                     models.MoodSad,
		"Kızgın":                    models.MoodAngry,
		"Stresli":                   models.MoodStressed,
		"Yorgun":                    models.MoodTired,
		"Hasta":                     models.MoodSick,
		"Enerjik":                   models.MoodEnergetic,
		"Umutlu":                    models.MoodHopeful,
		"Sakin":                     models.MoodCalm,
		"Heyecanlı":                 models.MoodExcited,
		"Endişeli":                  models.MoodAnxious,
		"Huzurlu":                   models.MoodPeaceful,
		"Hayal Kırıklığına Uğramış": models.MoodDisappointed,
		"Minnettar":                 models.MoodGrateful,
		"Odaklanmış":                models.MoodFocused,
	}
	legacyActivities = map[string]models.ActivityType{
		"Yürüyüş":          models.ActivityWalking,
		"Koşu":             models.ActivityRunning,
		"Bisiklet":         models.ActivityCycling,
		"Egzersiz (Genel)": models.ActivityExercise,
		"Yoga":             models.ActivityYoga,
		"Dans":             models.ActivityDance,
		"Temizlik":         models.ActivityCleaning,
		"Bahçe İşi":        models.ActivityGardening,
		"Diğer":            models.ActivityOther,
	}
)

// canonical resolves raw to a known value, either directly or through a legacy alias.
func canonical[T ~string](raw string, known []T, aliases map[string]T) (T, bool) {
	for _, k := range known {
		if string(k) == raw {
			return k, true
		}
	}
	v, ok := aliases[raw]
	return v, ok
}

// canonicalList resolves every entry and drops unknown ones, keeping first occurrences only.
func canonicalList[T ~string](raw []string, known []T, aliases map[string]T) []T {
	out := make([]T, 0, len(raw))
	seen := make(map[T]struct{}, len(raw))
	for _, s := range raw {
		v, ok := canonical(s, known, aliases)
		if !ok {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

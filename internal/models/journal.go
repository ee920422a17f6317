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

package models

import "time"

type Mood string

const (
	MoodHappy        Mood = "Happy"
	MoodGood         Mood = "Good"
	MoodNormal       Mood = "Normal"
	MoodSad          Mood = "Sad"
	MoodAngry        Mood = "Angry"
	MoodStressed     Mood = "Stressed"
	MoodTired        Mood = "Tired"
	MoodSick         Mood = "Sick"
	MoodEnergetic    Mood = "Energetic"
	MoodHopeful      Mood = "Hopeful"
	MoodCalm         Mood = "Calm"
	MoodExcited      Mood = "Excited"
	MoodAnxious      Mood = "Anxious"
	MoodPeaceful     Mood = "Peaceful"
	MoodDisappointed Mood = "Disappointed"
	MoodGrateful     Mood = "Grateful"
	MoodFocused      Mood = "Focused"
)

var Moods = []Mood{
	MoodHappy, MoodGood, MoodNormal, MoodSad, MoodAngry, MoodStressed,
	MoodTired, MoodSick, MoodEnergetic, MoodHopeful, MoodCalm, MoodExcited,
	MoodAnxious, MoodPeaceful, MoodDisappointed, MoodGrateful, MoodFocused,
}

const (
	MinEnergy     = 1
	MaxEnergy     = 10
	DefaultEnergy = 5
)

// MoodEntry is the single record for one calendar day. Date ("YYYY-MM-DD") is the document id.
type MoodEntry struct {
	Date      string     `json:"date"`
	Moods     []Mood     `json:"moods"`
	Energy    int        `json:"energy"`
	Notes     string     `json:"notes,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type ActivityType string

const (
	ActivityWalking   ActivityType = "Walking"
	ActivityRunning   ActivityType = "Running"
	ActivityCycling   ActivityType = "Cycling"
	ActivityExercise  ActivityType = "Exercise"
	ActivityYoga      ActivityType = "Yoga"
	ActivityDance     ActivityType = "Dance"
	ActivityCleaning  ActivityType = "Cleaning"
	ActivityGardening ActivityType = "Gardening"
	ActivityOther     ActivityType = "Other"
)

var ActivityTypes = []ActivityType{
	ActivityWalking, ActivityRunning, ActivityCycling, ActivityExercise, ActivityYoga,
	ActivityDance, ActivityCleaning, ActivityGardening, ActivityOther,
}

type ActivityEntry struct {
	ID              string       `json:"id"`
	ActivityType    ActivityType `json:"activityType"`
	ActivityTime    time.Time    `json:"activityTime"`
	DurationMinutes int          `json:"durationMinutes"`
	Description     string       `json:"description,omitempty"`
	CreatedAt       time.Time    `json:"createdAt"`
}

type FoodEntry struct {
	ID              string    `json:"id"`
	EntryTime       time.Time `json:"entryTime"`
	FoodDescription string    `json:"foodDescription"`
	CreatedAt       time.Time `json:"createdAt"`
}

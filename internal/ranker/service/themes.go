package service

import "gametale-ranker/internal/ranker/dto"

// top10Themes is the daily rotation table. The day-of-year index walks this
// list, so ordering is part of the rotation contract: appending is safe,
// reordering shifts every future day's theme.
var top10Themes = []dto.Top10Theme{
	// Horror & dark
	{ID: "horror", Title: "Top 10 Horror Games", Emoji: "👻", Genre: "horror", Ordering: "-rating", Description: "Games that will keep you up at night"},
	{ID: "horror-2025", Title: "Top 10 Horror Games of 2025", Emoji: "🎃", Genre: "horror", Year: 2025, Ordering: "-rating", Description: "This year's scariest experiences"},

	// Story & narrative
	{ID: "story", Title: "Top 10 Story-Driven Games", Emoji: "📖", Tag: "story-rich", Ordering: "-rating", Description: "Games with unforgettable narratives"},
	{ID: "emotional", Title: "Top 10 Emotional Journeys", Emoji: "😢", Tag: "emotional", Ordering: "-rating", Description: "Games that will make you feel"},

	// Action & adventure
	{ID: "action", Title: "Top 10 Action Games", Emoji: "💥", Genre: "action", Ordering: "-rating", Description: "Non-stop adrenaline rush"},
	{ID: "adventure", Title: "Top 10 Adventure Games", Emoji: "🗺️", Genre: "adventure", Ordering: "-rating", Description: "Epic journeys await"},
	{ID: "action-2025", Title: "Top 10 Action Games of 2025", Emoji: "🔥", Genre: "action", Year: 2025, Ordering: "-rating", Description: "This year's best action"},

	// RPG
	{ID: "rpg", Title: "Top 10 RPGs", Emoji: "⚔️", Genre: "role-playing-games-rpg", Ordering: "-rating", Description: "Become the hero you want to be"},
	{ID: "jrpg", Title: "Top 10 JRPGs", Emoji: "🎌", Tag: "jrpg", Ordering: "-rating", Description: "Japanese RPG masterpieces"},
	{ID: "rpg-2025", Title: "Top 10 RPGs of 2025", Emoji: "🛡️", Genre: "role-playing-games-rpg", Year: 2025, Ordering: "-rating", Description: "This year's role-playing adventures"},

	// Open world
	{ID: "openworld", Title: "Top 10 Open World Games", Emoji: "🌍", Tag: "open-world", Ordering: "-rating", Description: "Explore without limits"},
	{ID: "sandbox", Title: "Top 10 Sandbox Games", Emoji: "🏗️", Tag: "sandbox", Ordering: "-rating", Description: "Create your own adventure"},

	// Indie
	{ID: "indie", Title: "Top 10 Indie Gems", Emoji: "💎", Genre: "indie", Ordering: "-rating", Description: "Hidden treasures from indie devs"},
	{ID: "indie-2025", Title: "Top 10 Indie Games of 2025", Emoji: "✨", Genre: "indie", Year: 2025, Ordering: "-rating", Description: "This year's indie highlights"},

	// Multiplayer
	{ID: "multiplayer", Title: "Top 10 Multiplayer Games", Emoji: "👥", Tag: "multiplayer", Ordering: "-rating", Description: "Best with friends"},
	{ID: "coop", Title: "Top 10 Co-op Games", Emoji: "🤝", Tag: "co-op", Ordering: "-rating", Description: "Team up for fun"},
	{ID: "pvp", Title: "Top 10 Competitive Games", Emoji: "🏆", Tag: "competitive", Ordering: "-rating", Description: "Prove you're the best"},

	// Genres
	{ID: "puzzle", Title: "Top 10 Puzzle Games", Emoji: "🧩", Genre: "puzzle", Ordering: "-rating", Description: "Challenge your mind"},
	{ID: "platformer", Title: "Top 10 Platformers", Emoji: "🏃", Genre: "platformer", Ordering: "-rating", Description: "Jump and run classics"},
	{ID: "shooter", Title: "Top 10 Shooters", Emoji: "🔫", Genre: "shooter", Ordering: "-rating", Description: "Aim for the top"},
	{ID: "strategy", Title: "Top 10 Strategy Games", Emoji: "♟️", Genre: "strategy", Ordering: "-rating", Description: "Outsmart your opponents"},
	{ID: "simulation", Title: "Top 10 Simulation Games", Emoji: "🎮", Genre: "simulation", Ordering: "-rating", Description: "Life simulators and more"},
	{ID: "racing", Title: "Top 10 Racing Games", Emoji: "🏎️", Genre: "racing", Ordering: "-rating", Description: "Speed demons unite"},
	{ID: "sports", Title: "Top 10 Sports Games", Emoji: "⚽", Genre: "sports", Ordering: "-rating", Description: "Athletic excellence"},
	{ID: "fighting", Title: "Top 10 Fighting Games", Emoji: "🥊", Genre: "fighting", Ordering: "-rating", Description: "Ready to rumble"},

	// Specific tags
	{ID: "roguelike", Title: "Top 10 Roguelikes", Emoji: "💀", Tag: "roguelike", Ordering: "-rating", Description: "Die, learn, repeat"},
	{ID: "survival", Title: "Top 10 Survival Games", Emoji: "🏕️", Tag: "survival", Ordering: "-rating", Description: "Stay alive at all costs"},
	{ID: "metroidvania", Title: "Top 10 Metroidvanias", Emoji: "🗝️", Tag: "metroidvania", Ordering: "-rating", Description: "Explore and unlock"},
	{ID: "soulslike", Title: "Top 10 Souls-like Games", Emoji: "🌑", Tag: "souls-like", Ordering: "-rating", Description: "Prepare to die"},
	{ID: "stealth", Title: "Top 10 Stealth Games", Emoji: "🥷", Tag: "stealth", Ordering: "-rating", Description: "Silent but deadly"},
	{ID: "exploration", Title: "Top 10 Exploration Games", Emoji: "🔭", Tag: "exploration", Ordering: "-rating", Description: "Discover the unknown"},

	// Year-based
	{ID: "best-2025", Title: "Best Games of 2025", Emoji: "🌟", Year: 2025, Ordering: "-rating", Description: "This year's finest"},
	{ID: "best-2024", Title: "Best Games of 2024", Emoji: "🏅", Year: 2024, Ordering: "-rating", Description: "Last year's highlights"},
	{ID: "best-2023", Title: "Best Games of 2023", Emoji: "🎖️", Year: 2023, Ordering: "-rating", Description: "2023's greatest hits"},

	// Settings
	{ID: "scifi", Title: "Top 10 Sci-Fi Games", Emoji: "🚀", Tag: "sci-fi", Ordering: "-rating", Description: "Explore the future"},
	{ID: "fantasy", Title: "Top 10 Fantasy Games", Emoji: "🧙", Tag: "fantasy", Ordering: "-rating", Description: "Magic and wonder"},
	{ID: "cyberpunk", Title: "Top 10 Cyberpunk Games", Emoji: "🤖", Tag: "cyberpunk", Ordering: "-rating", Description: "High-tech dystopia"},
	{ID: "postapoc", Title: "Top 10 Post-Apocalyptic Games", Emoji: "☢️", Tag: "post-apocalyptic", Ordering: "-rating", Description: "Survive the end"},
	{ID: "medieval", Title: "Top 10 Medieval Games", Emoji: "🏰", Tag: "medieval", Ordering: "-rating", Description: "Knights and kingdoms"},
	{ID: "anime", Title: "Top 10 Anime-Style Games", Emoji: "🎨", Tag: "anime", Ordering: "-rating", Description: "Beautiful anime aesthetics"},

	// Playstyle
	{ID: "relaxing", Title: "Top 10 Relaxing Games", Emoji: "🧘", Tag: "relaxing", Ordering: "-rating", Description: "Unwind and chill"},
	{ID: "difficult", Title: "Top 10 Most Challenging Games", Emoji: "😤", Tag: "difficult", Ordering: "-rating", Description: "For the hardcore"},
	{ID: "short", Title: "Top 10 Short But Sweet Games", Emoji: "⏱️", Tag: "short", Ordering: "-rating", Description: "Quality over quantity"},
	{ID: "atmospheric", Title: "Top 10 Atmospheric Games", Emoji: "🌌", Tag: "atmospheric", Ordering: "-rating", Description: "Immersive worlds"},
	{ID: "beautiful", Title: "Top 10 Most Beautiful Games", Emoji: "🎨", Tag: "beautiful", Ordering: "-rating", Description: "Visual masterpieces"},

	// Catch-alls
	{ID: "classic", Title: "Top 10 Classic Games", Emoji: "🕹️", Tag: "classic", Ordering: "-rating", Description: "Timeless legends"},
	{ID: "underrated", Title: "Top 10 Underrated Gems", Emoji: "💠", Tag: "hidden-gem", Ordering: "-added", Description: "Overlooked masterpieces"},
	{ID: "free", Title: "Top 10 Free-to-Play Games", Emoji: "🆓", Tag: "free-to-play", Ordering: "-rating", Description: "No cost, all fun"},
	{ID: "singleplayer", Title: "Top 10 Single-Player Games", Emoji: "🎯", Tag: "singleplayer", Ordering: "-rating", Description: "Solo adventures"},
}

// themeSlugs maps theme IDs to the SEO slugs used in page URLs. IDs without
// an entry fall back to the ID itself.
var themeSlugs = map[string]string{
	"horror":       "horror-games",
	"horror-2025":  "horror-games-2025",
	"story":        "story-driven-games",
	"emotional":    "emotional-games",
	"action":       "action-games",
	"adventure":    "adventure-games",
	"action-2025":  "action-games-2025",
	"rpg":          "best-rpgs",
	"jrpg":         "best-jrpgs",
	"rpg-2025":     "best-rpgs-2025",
	"openworld":    "open-world-games",
	"sandbox":      "sandbox-games",
	"indie":        "indie-games",
	"indie-2025":   "indie-games-2025",
	"multiplayer":  "multiplayer-games",
	"coop":         "co-op-games",
	"pvp":          "competitive-games",
	"puzzle":       "puzzle-games",
	"platformer":   "platformer-games",
	"shooter":      "shooter-games",
	"strategy":     "strategy-games",
	"simulation":   "simulation-games",
	"racing":       "racing-games",
	"sports":       "sports-games",
	"fighting":     "fighting-games",
	"roguelike":    "roguelike-games",
	"survival":     "survival-games",
	"metroidvania": "metroidvania-games",
	"soulslike":    "souls-like-games",
	"stealth":      "stealth-games",
	"exploration":  "exploration-games",
	"best-2025":    "best-games-2025",
	"best-2024":    "best-games-2024",
	"best-2023":    "best-games-2023",
	"scifi":        "sci-fi-games",
	"fantasy":      "fantasy-games",
	"cyberpunk":    "cyberpunk-games",
	"postapoc":     "post-apocalyptic-games",
	"medieval":     "medieval-games",
	"anime":        "anime-games",
	"relaxing":     "relaxing-games",
	"difficult":    "hardest-games",
	"short":        "short-games",
	"atmospheric":  "atmospheric-games",
	"beautiful":    "beautiful-games",
	"classic":      "classic-games",
	"underrated":   "underrated-gems",
	"free":         "free-games",
	"singleplayer": "single-player-games",
}

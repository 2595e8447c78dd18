package taxonomy

// Group - зонтичная категория с подкатегориями.
type Group struct {
	Parent   string
	Children []string
}

// EthnicityGroups - встроенная таксономия этносов. Выбор зонтичной категории
// на одной стороне должен матчиться с узким выбором на другой.
var EthnicityGroups = []Group{
	{
		Parent: "Asian",
		Children: []string{
			"East Asian (ex. China, Korea, Japan)",
			"South Asian (ex. India, Pakistan, Bangladesh)",
			"Southeast Asian (ex. Vietnam, Thailand, Philippines)",
			"Central Asian (ex. Kazakhstan, Uzbekistan)",
		},
	},
	{
		Parent: "Black or African Diaspora",
		Children: []string{
			"African American",
			"African (ex. Nigeria, Ghana, Ethiopia)",
			"Caribbean (ex. Jamaica, Haiti, Trinidad)",
			"Afro-Latine",
		},
	},
	{
		Parent: "Latine or Hispanic",
		Children: []string{
			"Mexican or Chicano",
			"Central American",
			"South American",
			"Caribbean Hispanic (ex. Puerto Rico, Cuba, Dominican Republic)",
		},
	},
	{
		Parent: "Middle Eastern or North African",
		Children: []string{
			"Arab (ex. Egypt, Lebanon, Syria)",
			"Persian",
			"Turkish",
			"North African (ex. Morocco, Algeria, Tunisia)",
		},
	},
	{
		Parent: "Indigenous",
		Children: []string{
			"Native American or Alaska Native",
			"Native Hawaiian or Pacific Islander",
			"First Nations or Inuit or Métis",
		},
	},
	{
		Parent: "White or European Diaspora",
		Children: []string{
			"Western European",
			"Eastern European",
			"Ashkenazi Jewish",
		},
	},
}

// Expand дополняет список выбранных категорий всеми подкатегориями выбранных
// зонтичных категорий. Дубликаты убираются, неизвестные родители молча
// игнорируются, порядок не значим.
func Expand(selected []string, groups []Group) []string {
	seen := make(map[string]bool, len(selected))
	result := make([]string, 0, len(selected))

	for _, value := range selected {
		if !seen[value] {
			seen[value] = true
			result = append(result, value)
		}
	}

	for _, group := range groups {
		if !seen[group.Parent] {
			continue
		}
		for _, child := range group.Children {
			if !seen[child] {
				seen[child] = true
				result = append(result, child)
			}
		}
	}

	return result
}

// ExpandEthnicities - Expand по встроенной таксономии этносов.
func ExpandEthnicities(selected []string) []string {
	return Expand(selected, EthnicityGroups)
}

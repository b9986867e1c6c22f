package gen

var (
	// FeatureJSON provides a feature-flag for the data-interchange adapter.
	// Declarations opting in with the json directive get MarshalText and
	// UnmarshalText (and, for identifiers, MarshalJSON and UnmarshalJSON)
	// using the same labels as the database boundary.
	FeatureJSON = Feature{
		Name:        "json",
		Stage:       Stable,
		Default:     false,
		Description: "Emits text and JSON marshaling that reuses the database labels",
	}

	// FeatureJSONSchema provides a feature-flag for the API schema adapter.
	// It requires FeatureJSON on the same declaration, since the schema
	// describes the JSON form.
	FeatureJSONSchema = Feature{
		Name:        "jsonschema",
		Stage:       Stable,
		Default:     false,
		Description: "Emits JSONSchema methods compatible with github.com/invopop/jsonschema",
	}

	// FeatureTypedUUID enables the typed identifier generator. Without it,
	// //dbtype:id declarations are rejected.
	FeatureTypedUUID = Feature{
		Name:        "typed-uuid",
		Stage:       Stable,
		Default:     false,
		Description: "Generates typed identifier wrappers (uuid, ulid and integer inner types)",
	}

	// FeatureDangerousConstruction allows identifiers to opt into an
	// unchecked constructor:
	//
	//	//dbtype:id dangerous-construction
	//	type LegacyAccountID struct{ id int64 }
	//
	//	id := DangerouslyNewLegacyAccountID(42)
	FeatureDangerousConstruction = Feature{
		Name:        "dangerous-construction",
		Stage:       Stable,
		Default:     false,
		Description: "Allows DangerouslyNew<Type> constructors that bypass validated construction",
	}

	// FeatureGraphQL provides a feature-flag for gqlgen marshalers.
	FeatureGraphQL = Feature{
		Name:        "graphql",
		Stage:       Experimental,
		Default:     false,
		Description: "Emits MarshalGQL and UnmarshalGQL for github.com/99designs/gqlgen",
	}

	// FeatureMsgpack provides a feature-flag for msgpack custom encoders.
	FeatureMsgpack = Feature{
		Name:        "msgpack",
		Stage:       Experimental,
		Default:     false,
		Description: "Emits EncodeMsgpack and DecodeMsgpack for github.com/vmihailenco/msgpack/v5",
	}

	// AllFeatures holds a list of all feature-flags.
	AllFeatures = []Feature{
		FeatureJSON,
		FeatureJSONSchema,
		FeatureTypedUUID,
		FeatureDangerousConstruction,
		FeatureGraphQL,
		FeatureMsgpack,
	}
)

// FeatureStage describes the stage of the codegen feature.
type FeatureStage int

const (
	_ FeatureStage = iota

	// Experimental features are in development, and their output may change
	// between releases.
	Experimental

	// Alpha features are complete, but we expect breaking-changes to their
	// generated APIs.
	Alpha

	// Beta features are Alpha features that were documented, and no
	// breaking-changes are expected for them.
	Beta

	// Stable features are Beta features that were used for a while.
	Stable
)

// String returns the stage name.
func (s FeatureStage) String() string {
	switch s {
	case Experimental:
		return "experimental"
	case Alpha:
		return "alpha"
	case Beta:
		return "beta"
	case Stable:
		return "stable"
	default:
		return "unknown"
	}
}

// A Feature of the dbtype codegen.
type Feature struct {
	// Name of the feature. It is also the directive key declarations use to
	// opt into the feature.
	Name string

	// Stage of the feature.
	Stage FeatureStage

	// Default values indicates if this feature is enabled by default.
	Default bool

	// A Description of this feature.
	Description string
}

// FeatureByName returns the feature called name.
func FeatureByName(name string) (Feature, bool) {
	for _, f := range AllFeatures {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}

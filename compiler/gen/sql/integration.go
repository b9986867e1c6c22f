package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/dbtype/compiler/gen"
)

// Adapters reuse the database labels so that a value has one textual form
// at every boundary.

// jsonAdapter emits encoding.TextMarshaler and, for identifiers,
// json.Marshaler implementations.
type jsonAdapter struct {
	helper gen.GeneratorHelper
}

var _ gen.IntegrationGenerator = (*jsonAdapter)(nil)

func (*jsonAdapter) Feature() string { return gen.FeatureJSON.Name }

func (a *jsonAdapter) GenEnumAdapter(f *jen.File, e *gen.Enum) {
	recv := e.Receiver()

	f.Comment("MarshalText implements encoding.TextMarshaler.")
	f.Func().Params(enumRecv(e)).Id("MarshalText").Params().Params(jen.Index().Byte(), jen.Error()).Block(
		invalidVariant(a.helper, e, jen.Nil()),
		jen.Return(jen.Index().Byte().Call(jen.Id(recv).Dot("Label").Call()), jen.Nil()),
	)

	f.Comment("UnmarshalText implements encoding.TextUnmarshaler.")
	f.Func().Params(enumPtrRecv(e)).Id("UnmarshalText").Params(jen.Id("text").Index().Byte()).Error().Block(
		parseInto(e, jen.String().Call(jen.Id("text")))...,
	)
}

func (a *jsonAdapter) GenIdentifierAdapter(f *jen.File, id *gen.Identifier) {
	f.Comment("MarshalText implements encoding.TextMarshaler.")
	switch id.Inner.Kind {
	case gen.InnerValuer:
		f.Func().Params(idRecv(id)).Id("MarshalText").Params().Params(jen.Index().Byte(), jen.Error()).Block(
			jen.Return(inner(id).Dot("MarshalText").Call()),
		)
	case gen.InnerInt:
		f.Func().Params(idRecv(id)).Id("MarshalText").Params().Params(jen.Index().Byte(), jen.Error()).Block(
			jen.Return(jen.Qual("strconv", "AppendInt").Call(jen.Nil(), jen.Int64().Call(inner(id)), jen.Lit(10)), jen.Nil()),
		)
	case gen.InnerUint:
		f.Func().Params(idRecv(id)).Id("MarshalText").Params().Params(jen.Index().Byte(), jen.Error()).Block(
			jen.Return(jen.Qual("strconv", "AppendUint").Call(jen.Nil(), jen.Uint64().Call(inner(id)), jen.Lit(10)), jen.Nil()),
		)
	default:
		f.Func().Params(idRecv(id)).Id("MarshalText").Params().Params(jen.Index().Byte(), jen.Error()).Block(
			jen.Return(jen.Index().Byte().Call(inner(id)), jen.Nil()),
		)
	}

	f.Comment("UnmarshalText implements encoding.TextUnmarshaler.")
	if id.Inner.Kind == gen.InnerValuer {
		f.Func().Params(idPtrRecv(id)).Id("UnmarshalText").Params(jen.Id("text").Index().Byte()).Error().Block(
			jen.Return(inner(id).Dot("UnmarshalText").Call(jen.Id("text"))),
		)
	} else {
		f.Func().Params(idPtrRecv(id)).Id("UnmarshalText").Params(jen.Id("text").Index().Byte()).Error().Block(
			jen.List(jen.Id("parsed"), jen.Err()).Op(":=").Id("Parse"+id.Name).Call(jen.String().Call(jen.Id("text"))),
			jen.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Err())),
			jen.Op("*").Id(id.Receiver()).Op("=").Id("parsed"),
			jen.Return(jen.Nil()),
		)
	}

	// Integer identifiers stay JSON numbers.
	f.Comment("MarshalJSON implements json.Marshaler.")
	f.Func().Params(idRecv(id)).Id("MarshalJSON").Params().Params(jen.Index().Byte(), jen.Error()).Block(
		jen.Return(jen.Qual("encoding/json", "Marshal").Call(inner(id))),
	)

	f.Comment("UnmarshalJSON implements json.Unmarshaler.")
	f.Func().Params(idPtrRecv(id)).Id("UnmarshalJSON").Params(jen.Id("data").Index().Byte()).Error().Block(
		jen.Return(jen.Qual("encoding/json", "Unmarshal").Call(jen.Id("data"), jen.Op("&").Add(inner(id)))),
	)
}

// jsonschemaAdapter emits the JSONSchema method read by
// github.com/invopop/jsonschema reflection.
type jsonschemaAdapter struct {
	helper gen.GeneratorHelper
}

var _ gen.IntegrationGenerator = (*jsonschemaAdapter)(nil)

func (*jsonschemaAdapter) Feature() string { return gen.FeatureJSONSchema.Name }

func (a *jsonschemaAdapter) GenEnumAdapter(f *jen.File, e *gen.Enum) {
	args := []jen.Code{jen.Lit(e.Name), jen.Lit(e.Description)}
	for _, l := range e.Labels() {
		args = append(args, jen.Lit(l))
	}
	f.Commentf("JSONSchema returns the JSON schema of %s.", e.Name)
	f.Func().Params(jen.Id(e.Name)).Id("JSONSchema").Params().Op("*").Qual(jsonschemaPkg, "Schema").Block(
		jen.Return(rt(a.helper, "EnumSchema").Call(args...)),
	)
}

func (a *jsonschemaAdapter) GenIdentifierAdapter(f *jen.File, id *gen.Identifier) {
	f.Commentf("JSONSchema returns the JSON schema of %s.", id.Name)
	f.Func().Params(jen.Id(id.Name)).Id("JSONSchema").Params().Op("*").Qual(jsonschemaPkg, "Schema").Block(
		jen.Return(rt(a.helper, "IdentifierSchema").Call(
			jen.Lit(id.Name), jen.Lit(id.Description), jen.Lit(id.Inner.SchemaType), jen.Lit(id.Inner.SchemaFormat),
		)),
	)
}

// graphqlAdapter emits gqlgen's graphql.Marshaler and graphql.Unmarshaler.
// Values are GraphQL strings.
type graphqlAdapter struct {
	helper gen.GeneratorHelper
}

var _ gen.IntegrationGenerator = (*graphqlAdapter)(nil)

func (*graphqlAdapter) Feature() string { return gen.FeatureGraphQL.Name }

func (a *graphqlAdapter) GenEnumAdapter(f *jen.File, e *gen.Enum) {
	recv := e.Receiver()

	f.Comment("MarshalGQL implements graphql.Marshaler.")
	f.Func().Params(enumRecv(e)).Id("MarshalGQL").Params(jen.Id("out").Qual("io", "Writer")).Block(
		jen.Qual("io", "WriteString").Call(jen.Id("out"), jen.Qual("strconv", "Quote").Call(jen.Id(recv).Dot("Label").Call())),
	)

	f.Comment("UnmarshalGQL implements graphql.Unmarshaler.")
	f.Func().Params(enumPtrRecv(e)).Id("UnmarshalGQL").Params(jen.Id("input").Any()).Error().Block(
		append([]jen.Code{
			jen.List(jen.Id("label"), jen.Id("ok")).Op(":=").Id("input").Assert(jen.String()),
			jen.If(jen.Op("!").Id("ok")).Block(
				jen.Return(jen.Qual("fmt", "Errorf").Call(jen.Lit(e.Name+": expected a string, got %T"), jen.Id("input"))),
			),
		}, parseInto(e, jen.Id("label"))...)...,
	)
}

func (a *graphqlAdapter) GenIdentifierAdapter(f *jen.File, id *gen.Identifier) {
	f.Comment("MarshalGQL implements graphql.Marshaler.")
	f.Func().Params(idRecv(id)).Id("MarshalGQL").Params(jen.Id("w").Qual("io", "Writer")).Block(
		jen.Qual("io", "WriteString").Call(jen.Id("w"), jen.Qual("strconv", "Quote").Call(innerText(id))),
	)

	// GraphQL ID inputs may arrive as numbers.
	f.Comment("UnmarshalGQL implements graphql.Unmarshaler.")
	f.Func().Params(idPtrRecv(id)).Id("UnmarshalGQL").Params(jen.Id("v").Any()).Error().Block(
		jen.Var().Id("s").String(),
		jen.Switch(jen.Id("x").Op(":=").Id("v").Assert(jen.Type())).Block(
			jen.Case(jen.String()).Block(jen.Id("s").Op("=").Id("x")),
			jen.Case(jen.Qual("encoding/json", "Number")).Block(jen.Id("s").Op("=").Id("x").Dot("String").Call()),
			jen.Default().Block(
				jen.Return(jen.Qual("fmt", "Errorf").Call(jen.Lit(id.Name+": expected a string, got %T"), jen.Id("v"))),
			),
		),
		jen.List(jen.Id("parsed"), jen.Err()).Op(":=").Id("Parse"+id.Name).Call(jen.Id("s")),
		jen.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Err())),
		jen.Op("*").Id(id.Receiver()).Op("=").Id("parsed"),
		jen.Return(jen.Nil()),
	)
}

// msgpackAdapter emits msgpack.CustomEncoder and msgpack.CustomDecoder for
// enums. Identifiers do not accept the msgpack directive.
type msgpackAdapter struct {
	helper gen.GeneratorHelper
}

var _ gen.IntegrationGenerator = (*msgpackAdapter)(nil)

func (*msgpackAdapter) Feature() string { return gen.FeatureMsgpack.Name }

func (a *msgpackAdapter) GenEnumAdapter(f *jen.File, e *gen.Enum) {
	recv := e.Receiver()

	f.Comment("EncodeMsgpack implements msgpack.CustomEncoder.")
	f.Func().Params(enumRecv(e)).Id("EncodeMsgpack").Params(jen.Id("enc").Op("*").Qual(msgpackPkg, "Encoder")).Error().Block(
		invalidVariant(a.helper, e),
		jen.Return(jen.Id("enc").Dot("EncodeString").Call(jen.Id(recv).Dot("Label").Call())),
	)

	f.Comment("DecodeMsgpack implements msgpack.CustomDecoder.")
	f.Func().Params(enumPtrRecv(e)).Id("DecodeMsgpack").Params(jen.Id("dec").Op("*").Qual(msgpackPkg, "Decoder")).Error().Block(
		append([]jen.Code{
			jen.List(jen.Id("label"), jen.Err()).Op(":=").Id("dec").Dot("DecodeString").Call(),
			jen.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Err())),
		}, parseInto(e, jen.Id("label"))...)...,
	)
}

func (*msgpackAdapter) GenIdentifierAdapter(*jen.File, *gen.Identifier) {}

package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/dbtype/compiler/gen"
	"github.com/syssam/dbtype/dialect"
)

// postgresBackend maps enums to native Postgres enum types. Labels travel as
// text, which both database/sql drivers and pgx accept for enum columns.
type postgresBackend struct {
	helper gen.GeneratorHelper
}

var _ gen.BackendGenerator = (*postgresBackend)(nil)

// Backend implements gen.BackendGenerator.
func (*postgresBackend) Backend() string { return dialect.Postgres }

// GenEnumCodec generates EncodePostgres, DecodePostgres, the pgx text
// contracts and PostgresTypeName.
func (b *postgresBackend) GenEnumCodec(f *jen.File, e *gen.Enum) {
	h, recv := b.helper, e.Receiver()

	f.Commentf("PostgresTypeName returns the name of the native enum type of %s.", e.Name)
	f.Func().Params(jen.Id(e.Name)).Id("PostgresTypeName").Params().String().Block(
		jen.Return(jen.Lit(e.PostgresType)),
	)

	f.Commentf("EncodePostgres returns the label of %s.", recv)
	f.Func().Params(enumRecv(e)).Id("EncodePostgres").Params().Add(driverValue()).Block(
		invalidVariant(h, e, jen.Nil()),
		jen.Return(jen.Id(recv).Dot("Label").Call(), jen.Nil()),
	)

	f.Commentf("DecodePostgres sets %s from a %s label.", recv, e.PostgresType)
	f.Func().Params(enumPtrRecv(e)).Id("DecodePostgres").Params(jen.Id("src").Any()).Error().Block(
		append([]jen.Code{
			jen.List(jen.Id("label"), jen.Err()).Op(":=").Add(rt(h, "TextFromSQL")).Call(jen.Lit(e.Name), jen.Id("src")),
			jen.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Err())),
		}, parseInto(e, jen.Id("label"))...)...,
	)

	f.Comment("ScanText implements pgtype.TextScanner.")
	f.Func().Params(enumPtrRecv(e)).Id("ScanText").Params(jen.Id("text").Qual(pgtypePkg, "Text")).Error().Block(
		append([]jen.Code{
			jen.List(jen.Id("label"), jen.Err()).Op(":=").Add(rt(h, "TextFromPostgres")).Call(jen.Lit(e.Name), jen.Id("text")),
			jen.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Err())),
		}, parseInto(e, jen.Id("label"))...)...,
	)

	f.Comment("TextValue implements pgtype.TextValuer.")
	f.Func().Params(enumRecv(e)).Id("TextValue").Params().Params(jen.Qual(pgtypePkg, "Text"), jen.Error()).Block(
		invalidVariant(h, e, jen.Qual(pgtypePkg, "Text").Values()),
		jen.Return(rt(h, "PostgresText").Call(jen.Id(recv).Dot("Label").Call()), jen.Nil()),
	)
}

// GenIdentifierCodec generates EncodePostgres and DecodePostgres forwarding
// to the inner value.
func (b *postgresBackend) GenIdentifierCodec(f *jen.File, id *gen.Identifier) {
	genIdentifierCodec(f, id, "Postgres")
}

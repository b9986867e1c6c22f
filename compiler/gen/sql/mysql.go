package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/dbtype/compiler/gen"
	"github.com/syssam/dbtype/dialect"
)

// mysqlBackend maps enums to text columns holding the label, or with
// mysql-repr=int to integer columns holding the discriminant.
type mysqlBackend struct {
	helper gen.GeneratorHelper
}

var _ gen.BackendGenerator = (*mysqlBackend)(nil)

// Backend implements gen.BackendGenerator.
func (*mysqlBackend) Backend() string { return dialect.MySQL }

// GenEnumCodec generates EncodeMySQL and DecodeMySQL.
func (b *mysqlBackend) GenEnumCodec(f *jen.File, e *gen.Enum) {
	if e.MySQLRepr == gen.MySQLInt {
		b.genIntCodec(f, e)
		return
	}
	h, recv := b.helper, e.Receiver()

	f.Commentf("EncodeMySQL returns the label of %s.", recv)
	f.Func().Params(enumRecv(e)).Id("EncodeMySQL").Params().Add(driverValue()).Block(
		invalidVariant(h, e, jen.Nil()),
		jen.Return(jen.Id(recv).Dot("Label").Call(), jen.Nil()),
	)

	f.Commentf("DecodeMySQL sets %s from a label stored as text.", recv)
	f.Func().Params(enumPtrRecv(e)).Id("DecodeMySQL").Params(jen.Id("src").Any()).Error().Block(
		append([]jen.Code{
			jen.List(jen.Id("label"), jen.Err()).Op(":=").Add(rt(h, "TextFromSQL")).Call(jen.Lit(e.Name), jen.Id("src")),
			jen.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Err())),
		}, parseInto(e, jen.Id("label"))...)...,
	)
}

func (b *mysqlBackend) genIntCodec(f *jen.File, e *gen.Enum) {
	h, recv := b.helper, e.Receiver()

	f.Commentf("EncodeMySQL returns the discriminant of %s.", recv)
	f.Func().Params(enumRecv(e)).Id("EncodeMySQL").Params().Add(driverValue()).Block(
		invalidVariant(h, e, jen.Nil()),
		jen.Return(jen.Int64().Call(jen.Id(recv)), jen.Nil()),
	)

	f.Commentf("DecodeMySQL sets %s from a discriminant stored as an integer.", recv)
	f.Func().Params(enumPtrRecv(e)).Id("DecodeMySQL").Params(jen.Id("src").Any()).Error().Block(
		jen.List(jen.Id("num"), jen.Err()).Op(":=").Add(rt(h, "Int64FromSQL")).Call(jen.Lit(e.Name), jen.Id("src")),
		jen.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Err())),
		jen.Id("parsed").Op(":=").Id(e.Name).Call(jen.Id("num")),
		// Reject values truncated by the conversion.
		jen.If(jen.Int64().Call(jen.Id("parsed")).Op("!=").Id("num").Op("||").Op("!").Id("parsed").Dot("IsValid").Call()).Block(
			jen.Return(rt(h, "NewUnknownVariantLabelError").Call(
				jen.Lit(e.Name),
				jen.Qual("strconv", "FormatInt").Call(jen.Id("num"), jen.Lit(10)),
			)),
		),
		jen.Op("*").Id(recv).Op("=").Id("parsed"),
		jen.Return(jen.Nil()),
	)
}

// GenIdentifierCodec generates EncodeMySQL and DecodeMySQL forwarding to the
// inner value.
func (b *mysqlBackend) GenIdentifierCodec(f *jen.File, id *gen.Identifier) {
	genIdentifierCodec(f, id, "MySQL")
}

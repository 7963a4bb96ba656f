package sqlinline

const QSelectCredential = `--sql 3f6b2a18-94c7-4f0e-b2d1-6a8e41c95d02
select token
from credentials
where provider = $1::text
limit 1;
`

const QUpsertCredential = `--sql b7c05e44-2d91-4a6b-9f3c-1e57a8d2640b
insert into credentials (id, provider, token, created_at, updated_at)
values (gen_random_uuid(), $1::text, $2::text, now(), now())
on conflict (provider) do update set
    token = excluded.token,
    updated_at = now();
`

const QDeleteCredential = `--sql 9a41d7f2-63b8-4c05-8e2a-f04c5b1d98e7
delete from credentials
where provider = $1::text;
`
